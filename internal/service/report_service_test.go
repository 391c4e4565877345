package service

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/kinemathika-api/internal/analytics"
	"github.com/noah-isme/kinemathika-api/internal/models"
	appErrors "github.com/noah-isme/kinemathika-api/pkg/errors"
)

type stubPerformanceSource struct {
	rows   []analytics.StudentPerformance
	err    error
	params []AnalyticsParams
}

func (s *stubPerformanceSource) StudentPerformances(_ context.Context, params AnalyticsParams) ([]analytics.StudentPerformance, bool, error) {
	s.params = append(s.params, params)
	return s.rows, false, s.err
}

func newReportServiceForTest(source PerformanceSource) *ReportService {
	classes := &fakeClassRepo{classes: []models.Class{{ID: "c1", Name: "Physics 7-A"}}}
	svc := NewReportService(source, classes, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestReportServiceClassReportCSV(t *testing.T) {
	source := &stubPerformanceSource{rows: []analytics.StudentPerformance{
		{StudentID: "S1", Name: "Ana Cruz", Email: "ana@example.com", Attempts: 2, ProgressPct: 2.2, AvgAttempts: 2, AvgTimeSec: 3},
	}}
	svc := newReportServiceForTest(source)

	file, err := svc.ClassReport(context.Background(), "c1", "csv", 0)
	require.NoError(t, err)
	assert.Equal(t, "class_report_c1_20250915.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)
	assert.Equal(t, "Student ID,Name,Email,Attempts,Progress %,Avg Attempts,Avg Time (s)\nS1,Ana Cruz,ana@example.com,2,2.2,2.00,3\n", string(file.Body))

	require.Len(t, source.params, 1)
	assert.Equal(t, analytics.ClassScope("c1"), source.params[0].Scope)
}

func TestReportServiceClassReportPDF(t *testing.T) {
	svc := newReportServiceForTest(&stubPerformanceSource{})

	file, err := svc.ClassReport(context.Background(), "c1", "PDF", 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "class_report_c1_20250915.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF")))
}

func TestReportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newReportServiceForTest(&stubPerformanceSource{})

	_, err := svc.ClassReport(context.Background(), "c1", "xlsx", 0)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestReportServiceUnknownClass(t *testing.T) {
	source := &stubPerformanceSource{}
	svc := newReportServiceForTest(source)

	_, err := svc.ClassReport(context.Background(), "999", "csv", 0)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnknownScope.Code, appErrors.FromError(err).Code)
	assert.Empty(t, source.params)
}

func TestReportServicePropagatesAnalyticsErrors(t *testing.T) {
	svc := newReportServiceForTest(&stubPerformanceSource{err: appErrors.Clone(appErrors.ErrMalformedRecord, "")})

	_, err := svc.ClassReport(context.Background(), "c1", "csv", 0)
	require.Error(t, err)
	assert.Equal(t, "MALFORMED_RECORD", appErrors.FromError(err).Code)
}

type singleClassFinder struct {
	class models.Class
}

func (f singleClassFinder) FindByID(_ context.Context, id string) (*models.Class, error) {
	if id != f.class.ID {
		return nil, sql.ErrNoRows
	}
	return &f.class, nil
}

func TestReportServiceOnlyNeedsClassLookup(t *testing.T) {
	svc := NewReportService(&stubPerformanceSource{}, singleClassFinder{class: models.Class{ID: "c7", Name: "Physics 8-C"}}, nil)

	file, err := svc.ClassReport(context.Background(), "c7", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	_, err = svc.ClassReport(context.Background(), "c8", "csv", 0)
	assert.Equal(t, appErrors.ErrUnknownScope.Code, appErrors.FromError(err).Code)
}
