package repositories

import (
	"fmt"
	"strings"

	"kpi-tracker-backend/config"
	"kpi-tracker-backend/db/models"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"
)

const kpiIndexName = "kpi_records"

// kpiDoc is the slim projection stored in the search index.
type kpiDoc struct {
	ID           string `json:"id"`
	Region       string `json:"region"`
	Circle       string `json:"circle"`
	ProjectName  string `json:"project_name"`
	Customer     string `json:"customer"`
	SiteID       string `json:"site_id"`
	PartnerName  string `json:"partner_name"`
	WorkdoneWeek string `json:"workdone_week"`
	BookingMonth string `json:"booking_month"`
}

func newKpiDoc(record *models.KpiRecord) kpiDoc {
	return kpiDoc{
		ID:           fmt.Sprintf("%d", record.ID),
		Region:       record.Region,
		Circle:       record.Circle,
		ProjectName:  record.ProjectNamePMS,
		Customer:     record.Customer,
		SiteID:       record.SiteID,
		PartnerName:  record.PartnerName,
		WorkdoneWeek: record.WorkdoneWeek,
		BookingMonth: record.BookingMonth,
	}
}

func (r *BleveRepository) IndexSingleKpiRecord(record *models.KpiRecord) error {
	doc := newKpiDoc(record)
	if err := r.indexer.IndexDocument(kpiIndexName, doc.ID, doc); err != nil {
		config.Logger.Error("Failed to index KPI record into Bleve",
			zap.Error(err),
			zap.String("record_id", doc.ID))
		return err
	}
	return nil
}

func (r *BleveRepository) IndexExistingKpiRecords(records []models.KpiRecord) error {
	docs := make(map[string]interface{}, len(records))
	for i := range records {
		doc := newKpiDoc(&records[i])
		docs[doc.ID] = doc
	}

	if len(docs) == 0 {
		config.Logger.Info("No KPI records to index into Bleve.")
		return nil
	}

	if err := r.indexer.BulkIndexDocuments(kpiIndexName, docs); err != nil {
		config.Logger.Error("Failed to bulk index KPI records into Bleve", zap.Error(err))
		return err
	}
	config.Logger.Info("Successfully bulk indexed KPI records into Bleve",
		zap.Int("count", len(docs)))
	return nil
}

func (r *BleveRepository) UpdateKpiRecord(record *models.KpiRecord) error {
	doc := newKpiDoc(record)
	return r.indexer.UpdateDocument(kpiIndexName, doc.ID, doc)
}

func (r *BleveRepository) DeleteKpiRecord(recordID string) error {
	return r.indexer.DeleteDocument(kpiIndexName, recordID)
}

func (r *BleveRepository) GetKpiDocument(recordID string) (interface{}, error) {
	return r.indexer.GetDocument(kpiIndexName, recordID)
}

// SearchKpiRecords runs a free-text query over site id, customer, project and
// partner names, with optional exact filters on region, circle and period.
func (r *BleveRepository) SearchKpiRecords(
	queryString string,
	region string,
	circle string,
	week string,
	month string,
) (*bleve.SearchResult, error) {
	queryString = strings.TrimSpace(queryString)
	queryStringLower := strings.ToLower(queryString)

	booleanQuery := bleve.NewBooleanQuery()
	if queryString != "" {
		exactMatch := bleve.NewBooleanQuery()

		siteExact := bleve.NewTermQuery(queryStringLower)
		siteExact.SetField("site_id")
		siteExact.SetBoost(10.0)
		exactMatch.AddShould(siteExact)

		customerMatch := bleve.NewMatchQuery(queryString)
		customerMatch.SetField("customer")
		customerMatch.SetBoost(8.0)
		exactMatch.AddShould(customerMatch)

		projectMatch := bleve.NewMatchQuery(queryString)
		projectMatch.SetField("project_name")
		projectMatch.SetBoost(7.0)
		exactMatch.AddShould(projectMatch)

		partnerMatch := bleve.NewMatchQuery(queryString)
		partnerMatch.SetField("partner_name")
		partnerMatch.SetBoost(6.0)
		exactMatch.AddShould(partnerMatch)

		prefixMatch := bleve.NewBooleanQuery()

		sitePrefix := bleve.NewPrefixQuery(queryStringLower)
		sitePrefix.SetField("site_id")
		sitePrefix.SetBoost(5.0)
		prefixMatch.AddShould(sitePrefix)

		customerPrefix := bleve.NewPrefixQuery(queryStringLower)
		customerPrefix.SetField("customer")
		customerPrefix.SetBoost(4.0)
		prefixMatch.AddShould(customerPrefix)

		fuzzyQuery := bleve.NewFuzzyQuery(queryStringLower)
		fuzzyQuery.SetField("site_id")
		fuzzyQuery.SetBoost(3.0)
		fuzzyQuery.SetFuzziness(1)
		prefixMatch.AddShould(fuzzyQuery)

		booleanQuery.AddShould(exactMatch)
		booleanQuery.AddShould(prefixMatch)
	}

	finalQuery := bleve.NewBooleanQuery()
	if queryString != "" {
		finalQuery.AddMust(booleanQuery)
	}

	if region != "" {
		regionQuery := bleve.NewTermQuery(strings.ToLower(region))
		regionQuery.SetField("region")
		finalQuery.AddMust(regionQuery)
	}
	if circle != "" {
		circleQuery := bleve.NewTermQuery(strings.ToLower(circle))
		circleQuery.SetField("circle")
		finalQuery.AddMust(circleQuery)
	}
	if week != "" {
		weekQuery := bleve.NewTermQuery(strings.ToLower(week))
		weekQuery.SetField("workdone_week")
		finalQuery.AddMust(weekQuery)
	}
	if month != "" {
		monthQuery := bleve.NewTermQuery(strings.ToLower(month))
		monthQuery.SetField("booking_month")
		finalQuery.AddMust(monthQuery)
	}

	return r.indexer.SearchIndex(kpiIndexName, finalQuery, 100)
}
