package government

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceValidate(t *testing.T) {
	s := &Service{Code: "  KRA-PIN ", Name: "KRA PIN", Fee: 500}
	require.NoError(t, s.Validate())
	assert.Equal(t, "kra-pin", s.Code)
	assert.NotEmpty(t, s.ID)

	assert.Error(t, (&Service{Name: "x"}).Validate())
	assert.Error(t, (&Service{Code: "x", Name: "x", Fee: -1}).Validate())
}

func TestDefaultCatalogueIsValid(t *testing.T) {
	for _, s := range DefaultCatalogue() {
		assert.NoError(t, s.Validate(), s.Code)
	}
}

func TestNewRequest(t *testing.T) {
	now := time.Now()
	svc := &Service{Code: "kra-pin", Name: "KRA PIN Registration", Active: true}

	r, err := NewRequest(svc, NewRequestParams{FullName: "Jane Doe", Email: "JANE@example.com"}, now)
	require.NoError(t, err)
	assert.Equal(t, RequestPending, r.Status())
	assert.Equal(t, "jane@example.com", r.Email())
	assert.Equal(t, "KRA PIN Registration", r.ServiceName())

	require.NoError(t, r.SetReference("GSR25010001"))
	assert.Error(t, r.SetReference("GSR25010002"))

	_, err = NewRequest(&Service{Code: "old", Active: false}, NewRequestParams{FullName: "J", Email: "j@x.io"}, now)
	assert.Error(t, err)
}

func TestRequestUpdateStatus(t *testing.T) {
	r, err := NewRequest(&Service{Code: "x", Name: "X", Active: true}, NewRequestParams{FullName: "J", Email: "j@x.io"}, time.Now())
	require.NoError(t, err)

	require.NoError(t, r.UpdateStatus(RequestCompleted, "Certificate emailed", time.Now()))
	assert.Equal(t, "Certificate emailed", r.State().AdminNotes)
	assert.Error(t, r.UpdateStatus("lost", "", time.Now()))
}
