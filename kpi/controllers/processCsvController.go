package controllers

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kpi-tracker-backend/config"
	"kpi-tracker-backend/db/models"
	"kpi-tracker-backend/kpi/services"
	"kpi-tracker-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// readTabularFile parses the uploaded file into headers plus data rows.
// CSV is read directly off the stream; XLSX goes through a temp file so
// excelize can open it.
func readTabularFile(file *multipart.FileHeader, c *fiber.Ctx) ([]string, [][]string, error) {
	if strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") {
		tempFilePath := fmt.Sprintf("./tmp/%s", filepath.Base(file.Filename))
		if err := utils.EnsureDirectoryExists(tempFilePath); err != nil {
			return nil, nil, err
		}
		if err := c.SaveFile(file, tempFilePath); err != nil {
			return nil, nil, err
		}
		defer os.Remove(tempFilePath)

		f, err := excelize.OpenFile(tempFilePath)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()

		sheetName := f.GetSheetName(0)
		allRows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, nil, err
		}
		if len(allRows) == 0 {
			return nil, nil, nil
		}
		return trimHeaders(allRows[0]), allRows[1:], nil
	}

	src, err := file.Open()
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()

	return readCsvRows(src)
}

// readCsvRows decodes a CSV stream leniently: ragged rows and stray quotes
// pass through so that bad cells surface as per-row validation errors instead
// of aborting the whole upload.
func readCsvRows(src io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		empty := true
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				empty = false
				break
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return trimHeaders(headers), rows, nil
}

func trimHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
	}
	return out
}

// ProcessCsv ingests one uploaded batch. Every row is validated and checked
// for duplicates; the batch commits only when every row passed, otherwise
// nothing is inserted and the per-row errors come back (with an emailed
// error report as a side channel).
func (kc *KpiController) ProcessCsv(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil || file == nil || file.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "CSV file is required.",
		})
	}
	preview := strings.EqualFold(strings.TrimSpace(c.FormValue("preview")), "true")
	uploadedBy := c.FormValue("uploaded_by")

	now, _ := utils.NetworkTimeIST()
	uploadTimestamp := now.Format(time.RFC3339Nano)

	headers, rows, err := readTabularFile(file, c)
	if err != nil {
		config.Logger.Error("Failed to read uploaded file",
			zap.String("filename", file.Filename),
			zap.Error(err),
		)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "CSV header missing or invalid.",
		})
	}
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"ok":      false,
			"message": "CSV header missing or invalid.",
		})
	}

	// Duplicate check and insert must see the same data, so the key
	// snapshot is read inside the transaction.
	tx := kc.DB.Begin()
	if tx.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Failed to begin database transaction",
		})
	}

	persistedKeys, err := kc.KpiRepo.GetAllUniqueKeys(tx, 0)
	if err != nil {
		tx.Rollback()
		config.Logger.Error("Failed to load uniqueness keys", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Something went wrong",
		})
	}

	result := services.BuildKpiBatch(kc.RegionCfg, headers, rows, persistedKeys, now, uploadTimestamp, preview)

	if len(result.Errors) > 0 {
		tx.Rollback()
		kc.reportBatchFailures(c, result.Failures, uploadedBy)

		response := fiber.Map{
			"ok":      false,
			"errors":  result.Errors,
			"message": "No rows were inserted due to errors.",
		}
		if preview {
			response["preview"] = result.Previews
		}
		return c.JSON(response)
	}

	if err := kc.KpiRepo.BulkCreate(tx, result.Staged); err != nil {
		tx.Rollback()
		config.Logger.Error("Transaction rolled back due to bulk insert error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Failed to insert rows. Database changes rolled back.",
		})
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		config.Logger.Error("Transaction rolled back due to commit error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":      false,
			"message": "Failed to commit row insertions. Database changes rolled back.",
		})
	}

	// Search index and analysis cache are eventually consistent; failures
	// here never undo the committed batch.
	if kc.BleveRepo != nil {
		if err := kc.BleveRepo.IndexExistingKpiRecords(result.Staged); err != nil {
			config.Logger.Warn("Failed to index uploaded batch into Bleve", zap.Error(err))
		}
	}
	utils.InvalidateCacheAsync(kc.RedisClient, "analysis")

	response := fiber.Map{
		"ok":       true,
		"inserted": len(result.Staged),
		"message":  fmt.Sprintf("Inserted %d valid rows into the database.", len(result.Staged)),
	}
	if preview {
		response["preview"] = result.Previews
	}
	return c.JSON(response)
}

// reportBatchFailures logs the rejected rows, generates the Excel error
// report and mails it to the uploader. All of it is best effort.
func (kc *KpiController) reportBatchFailures(c *fiber.Ctx, failures []services.RowFailure, uploadedBy string) {
	if len(failures) == 0 {
		return
	}

	batchID := uuid.New()
	errorRows := make([]models.BulkUploadErrorKpi, 0, len(failures))
	reportRows := make([][]interface{}, 0, len(failures))
	for _, f := range failures {
		errorType := models.ValidationErrorType
		if f.Duplicate {
			errorType = models.DuplicateErrorType
		}
		errorRows = append(errorRows, models.BulkUploadErrorKpi{
			ID:         uuid.New(),
			BatchID:    batchID,
			RowNumber:  f.RowNumber,
			Region:     f.Region,
			Circle:     f.Circle,
			SiteID:     f.SiteID,
			Customer:   f.Customer,
			Date:       f.Date,
			Reason:     f.Reason,
			ErrorType:  errorType,
			AddedVia:   models.BulkAddedViaType,
			UploadedBy: uploadedBy,
		})
		reportRows = append(reportRows, []interface{}{
			f.RowNumber, f.Region, f.Circle, f.SiteID, f.Customer, f.Date, f.Reason,
		})
	}

	if err := kc.KpiRepo.LogBulkUploadErrors(errorRows); err != nil {
		config.Logger.Warn("Failed to log invalid rows", zap.Error(err))
	}

	reportHeaders := []string{"Row", "Region", "Circle", "Site ID", "Customer", "Date", "Reason"}
	filePath, err := utils.GenerateErrorReport(batchID.String(), reportHeaders, reportRows)
	if err != nil {
		config.Logger.Warn("Failed to generate error report", zap.Error(err))
		return
	}

	if uploadedBy == "" {
		return
	}

	downloadLink := utils.GetDownloadURL(c, filePath)
	message := "Please find the attached file with error records (validation failures and duplicates)."
	subject := "KPI Upload Errors - " + time.Now().Format("2006-01-02 15:04:05")
	if err := utils.SendEmail(uploadedBy, message, subject, filePath); err != nil {
		config.Logger.Warn("Failed to send error report email", zap.Error(err))
		return
	}

	active := true
	emailLog := models.EmailLog{
		ID:             uuid.New(),
		Recipient:      uploadedBy,
		Subject:        subject,
		Message:        message,
		SentAt:         time.Now(),
		Active:         &active,
		AttachmentPath: downloadLink,
	}
	if err := kc.KpiRepo.LogEmailSent(&emailLog); err != nil {
		config.Logger.Warn("Failed to log email", zap.Error(err))
	}
}
