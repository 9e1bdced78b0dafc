package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKpiRecordCloneDoesNotAliasExtras(t *testing.T) {
	original := KpiRecord{Region: "North"}
	original.SetField("Remarks", "initial")

	clone := original.Clone()
	clone.SetField("Remarks", "changed")
	clone.SetField("New Column", "added")
	clone.Region = "East"

	assert.Equal(t, "initial", original.GetField("Remarks"))
	assert.Equal(t, "", original.GetField("New Column"))
	assert.Equal(t, "North", original.Region)
	assert.Equal(t, "changed", clone.GetField("Remarks"))
}

func TestKpiRecordCloneWithoutExtras(t *testing.T) {
	original := KpiRecord{Circle: "DL"}
	clone := original.Clone()
	require.Nil(t, clone.ExtraFields)

	clone.SetField("Remarks", "x")
	assert.Nil(t, original.ExtraFields)
}

func TestKpiRecordFieldRoundTrip(t *testing.T) {
	var r KpiRecord
	r.SetField(FieldCustomer, "Airtel")
	r.SetField("Remarks", "extra")

	assert.Equal(t, "Airtel", r.Customer)
	assert.Equal(t, "Airtel", r.GetField(FieldCustomer))
	assert.Equal(t, "extra", r.GetField("Remarks"))

	m := r.FieldMap()
	assert.Equal(t, "Airtel", m[FieldCustomer])
	assert.Equal(t, "extra", m["Remarks"])
}
