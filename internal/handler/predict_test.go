package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rockfall-backend/internal/models"
	"rockfall-backend/internal/predictor"
)

type stubService struct {
	batchOutcome *predictor.BatchOutcome
	rowResult    *predictor.RowResult
	err          error

	gotRows     [][]float64
	gotFeatures []float64
}

func (s *stubService) ProcessBatch(ctx context.Context, rows [][]float64) (*predictor.BatchOutcome, error) {
	s.gotRows = rows
	if s.err != nil {
		return nil, s.err
	}
	return s.batchOutcome, nil
}

func (s *stubService) ProcessSingle(ctx context.Context, features []float64) (*predictor.RowResult, error) {
	s.gotFeatures = features
	if s.err != nil {
		return nil, s.err
	}
	return s.rowResult, nil
}

func newTestRouter(svc PredictService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewPredictHandler(svc, zap.NewNop())
	router.POST("/api/predict", h.Predict)
	router.POST("/api/predict/bulk", h.BulkPredict)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBulkPredict_Success(t *testing.T) {
	svc := &stubService{
		batchOutcome: &predictor.BatchOutcome{
			Summary: predictor.BatchSummary{TotalRows: 2, Successful: 1, Failed: 1},
			Results: []predictor.RowResult{{
				Row:        1,
				Features:   []float64{1, 2, 3},
				Prediction: "The chance of rockfall is 90.00%.",
				DatabaseRecord: predictor.DatabaseRecord{
					PredictionID:    7,
					SensorReadingID: 9,
					LocationID:      1,
					RiskLevel:       models.RiskCritical,
					RiskScore:       90,
				},
			}},
			Errors: []predictor.RowError{{Row: 2, Error: "inference process exited with code 1"}},
		},
	}
	router := newTestRouter(svc)

	w := doJSON(t, router, "/api/predict/bulk", gin.H{"rows": [][]float64{{1, 2}, {3, 4}}})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool                   `json:"success"`
		BatchID string                 `json:"batch_id"`
		Summary predictor.BatchSummary `json:"summary"`
		Results []predictor.RowResult  `json:"results"`
		Errors  []predictor.RowError   `json:"errors"`
		Time    string                 `json:"timestamp"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success = false, want true even with per-row errors")
	}
	if resp.BatchID == "" {
		t.Error("batch_id missing")
	}
	if resp.Summary.TotalRows != 2 || resp.Summary.Successful != 1 || resp.Summary.Failed != 1 {
		t.Errorf("summary = %+v", resp.Summary)
	}
	if len(resp.Results) != 1 || resp.Results[0].DatabaseRecord.PredictionID != 7 {
		t.Errorf("results = %+v", resp.Results)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Row != 2 {
		t.Errorf("errors = %+v", resp.Errors)
	}
	if resp.Time == "" {
		t.Error("timestamp missing")
	}
	if len(svc.gotRows) != 2 {
		t.Errorf("service received %d rows, want 2", len(svc.gotRows))
	}
}

func TestBulkPredict_ValidationErrorIs400(t *testing.T) {
	svc := &stubService{err: &predictor.BatchSizeError{Size: 101}}
	router := newTestRouter(svc)

	w := doJSON(t, router, "/api/predict/bulk", gin.H{"rows": [][]float64{{1}}})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestBulkPredict_MalformedBodyIs400(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/api/predict/bulk", bytes.NewReader([]byte(`{"rows": "nope"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestPredict_Success(t *testing.T) {
	svc := &stubService{
		rowResult: &predictor.RowResult{
			Row:        1,
			Features:   []float64{1, 2, 3},
			Prediction: "The chance of rockfall is 15.00%.",
			DatabaseRecord: predictor.DatabaseRecord{
				PredictionID:    3,
				SensorReadingID: 4,
				LocationID:      1,
				RiskLevel:       models.RiskLow,
				RiskScore:       15,
			},
		},
	}
	router := newTestRouter(svc)

	w := doJSON(t, router, "/api/predict", gin.H{"features": []float64{1, 2, 3}})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Prediction     string                   `json:"prediction"`
		Features       []float64                `json:"features"`
		DatabaseRecord predictor.DatabaseRecord `json:"databaseRecord"`
		Time           string                   `json:"timestamp"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Prediction != "The chance of rockfall is 15.00%." {
		t.Errorf("prediction = %q", resp.Prediction)
	}
	if resp.DatabaseRecord.RiskLevel != models.RiskLow {
		t.Errorf("risk level = %s, want Low", resp.DatabaseRecord.RiskLevel)
	}
}

func TestPredict_ShapeErrorIs400(t *testing.T) {
	svc := &stubService{err: &predictor.ShapeError{Row: 1, Count: 12}}
	router := newTestRouter(svc)

	w := doJSON(t, router, "/api/predict", gin.H{"features": make([]float64, 12)})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestPredict_PipelineErrorIs500(t *testing.T) {
	svc := &stubService{err: context.DeadlineExceeded}
	router := newTestRouter(svc)

	w := doJSON(t, router, "/api/predict", gin.H{"features": []float64{1}})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}
