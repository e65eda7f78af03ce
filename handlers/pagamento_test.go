package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pagamento-svc/models"
	"pagamento-svc/repository"
	"pagamento-svc/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

var pagamentoTestColumns = []string{
	"id", "valor", "nome", "numero_do_cartao", "validade_do_cartao",
	"codigo_de_seguranca", "status", "pedido_id", "forma_de_pagamento_id",
	"created_at", "updated_at",
}

func setupPagamentoTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *gin.Engine) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	logger := zaptest.NewLogger(t, zaptest.Level(zap.InfoLevel))
	repo := repository.NewPagamentoRepository(db)
	svc := service.NewPagamentoService(repo, logger)
	handler := NewPagamentoHandler(svc, nil, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.RegisterRoutes(router)

	return db, mock, router
}

// seededPagamentoRows is the six-record baseline: record 1 belongs to
// "Nicodemus C Souza" with status CRIADO, record 6 is CONFIRMADO.
func seededPagamentoRows() *sqlmock.Rows {
	now := time.Now()
	nomes := []string{"Nicodemus C Souza", "Amadeus Mozart", "Bach", "Vivaldi", "Chopin", "Liszt"}
	rows := sqlmock.NewRows(pagamentoTestColumns)
	for i, nome := range nomes {
		status := "CRIADO"
		if i == 5 {
			status = "CONFIRMADO"
		}
		rows.AddRow(i+1, 90.25+float64(i), nome, "1234567891234567", "10/28", "123",
			status, i+1, 2, now, now)
	}
	return rows
}

func TestGetPagamentos_ReturnsSeededPage(t *testing.T) {
	db, mock, router := setupPagamentoTest(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery("FROM pagamentos ORDER BY id LIMIT").
		WithArgs(10, 0).
		WillReturnRows(seededPagamentoRows())

	req := httptest.NewRequest("GET", "/pagamentos", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var page models.Page
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if len(page.Content) != 6 {
		t.Errorf("Expected 6 pagamentos, got %d", len(page.Content))
	}
	if page.TotalElements != 6 {
		t.Errorf("Expected totalElements 6, got %d", page.TotalElements)
	}
	if page.Content[0].Nome == nil || *page.Content[0].Nome != "Nicodemus C Souza" {
		t.Errorf("Expected first pagamento nome 'Nicodemus C Souza', got %v", page.Content[0].Nome)
	}
	if page.Content[5].Status != models.StatusConfirmado {
		t.Errorf("Expected last pagamento status CONFIRMADO, got %s", page.Content[5].Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestGetPagamentos_SecondPage(t *testing.T) {
	db, mock, router := setupPagamentoTest(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(pagamentoTestColumns).
		AddRow(6, 95.25, "Liszt", nil, nil, nil, "CONFIRMADO", 6, 2, now, now)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery("FROM pagamentos ORDER BY id LIMIT").
		WithArgs(5, 5).
		WillReturnRows(rows)

	req := httptest.NewRequest("GET", "/pagamentos?page=1&size=5", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var page models.Page
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if len(page.Content) != 1 {
		t.Errorf("Expected 1 pagamento on the last page, got %d", len(page.Content))
	}
	if page.TotalPages != 2 {
		t.Errorf("Expected totalPages 2, got %d", page.TotalPages)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestGetPagamento_Success(t *testing.T) {
	db, mock, router := setupPagamentoTest(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(pagamentoTestColumns).
		AddRow(1, 90.25, "Nicodemus C Souza", "1234567891234567", "10/28", "123",
			"CRIADO", 1, 2, now, now)

	mock.ExpectQuery("FROM pagamentos WHERE id = \\$1").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	req := httptest.NewRequest("GET", "/pagamentos/1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var dto models.PagamentoDTO
	if err := json.Unmarshal(w.Body.Bytes(), &dto); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if dto.ID != 1 {
		t.Errorf("Expected id 1, got %d", dto.ID)
	}
	if dto.Nome == nil || *dto.Nome != "Nicodemus C Souza" {
		t.Errorf("Expected nome 'Nicodemus C Souza', got %v", dto.Nome)
	}
	if dto.Status != models.StatusCriado {
		t.Errorf("Expected status CRIADO, got %s", dto.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestGetPagamento_NotFound(t *testing.T) {
	db, mock, router := setupPagamentoTest(t)
	defer db.Close()

	mock.ExpectQuery("FROM pagamentos WHERE id = \\$1").
		WithArgs(int64(50)).
		WillReturnRows(sqlmock.NewRows(pagamentoTestColumns))

	req := httptest.NewRequest("GET", "/pagamentos/50", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestCreatePagamento_Success(t *testing.T) {
	db, mock, router := setupPagamentoTest(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(pagamentoTestColumns).
		AddRow(7, 25.25, nil, nil, nil, nil, "CRIADO", 7, 1, now, now)

	mock.ExpectQuery("INSERT INTO pagamentos").
		WithArgs(25.25, nil, nil, nil, nil, "CRIADO", int64(7), int64(1)).
		WillReturnRows(rows)

	body := []byte(`{"valor": 25.25, "pedidoId": 7, "formaDePagamentoId": 1}`)
	req := httptest.NewRequest("POST", "/pagamentos", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d", http.StatusCreated, w.Code)
	}
	if location := w.Header().Get("Location"); location != "/pagamentos/7" {
		t.Errorf("Expected Location '/pagamentos/7', got %q", location)
	}

	var dto models.PagamentoDTO
	if err := json.Unmarshal(w.Body.Bytes(), &dto); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	if dto.ID == 0 {
		t.Error("Expected a server-assigned id")
	}
	if dto.Status != models.StatusCriado {
		t.Errorf("Expected status CRIADO, got %s", dto.Status)
	}
	if dto.Nome != nil {
		t.Errorf("Expected nome to be empty, got %v", *dto.Nome)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestCreatePagamento_IgnoresClientStatus(t *testing.T) {
	db, mock, router := setupPagamentoTest(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(pagamentoTestColumns).
		AddRow(8, 25.25, nil, nil, nil, nil, "CRIADO", 7, 1, now, now)

	// The insert must carry CRIADO even though the client sent CONFIRMADO.
	mock.ExpectQuery("INSERT INTO pagamentos").
		WithArgs(25.25, nil, nil, nil, nil, "CRIADO", int64(7), int64(1)).
		WillReturnRows(rows)

	body := []byte(`{"valor": 25.25, "pedidoId": 7, "formaDePagamentoId": 1, "status": "CONFIRMADO"}`)
	req := httptest.NewRequest("POST", "/pagamentos", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var dto models.PagamentoDTO
	if err := json.Unmarshal(w.Body.Bytes(), &dto); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if dto.Status != models.StatusCriado {
		t.Errorf("Expected status CRIADO, got %s", dto.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestCreatePagamento_MissingRequiredField(t *testing.T) {
	db, mock, router := setupPagamentoTest(t)
	defer db.Close()

	// pedidoId missing; binding must reject before any query runs
	body := []byte(`{"valor": 25.25, "formaDePagamentoId": 1}`)
	req := httptest.NewRequest("POST", "/pagamentos", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestUpdatePagamento_Success(t *testing.T) {
	db, mock, router := setupPagamentoTest(t)
	defer db.Close()

	now := time.Now()
	existing := sqlmock.NewRows(pagamentoTestColumns).
		AddRow(1, 90.25, "Nicodemus C Souza", "1234567891234567", "10/28", "123",
			"CRIADO", 1, 2, now, now)
	updated := sqlmock.NewRows(pagamentoTestColumns).
		AddRow(1, 150.50, "Nicodemus C Souza", "1234567891234567", "10/28", "123",
			"CONFIRMADO", 1, 2, now, now)

	mock.ExpectQuery("FROM pagamentos WHERE id = \\$1").
		WithArgs(int64(1)).
		WillReturnRows(existing)
	mock.ExpectQuery("UPDATE pagamentos").
		WillReturnRows(updated)

	body := []byte(`{"valor": 150.50, "nome": "Nicodemus C Souza", "pedidoId": 1, "formaDePagamentoId": 2, "status": "CONFIRMADO"}`)
	req := httptest.NewRequest("PUT", "/pagamentos/1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var dto models.PagamentoDTO
	if err := json.Unmarshal(w.Body.Bytes(), &dto); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if dto.Valor != 150.50 {
		t.Errorf("Expected valor 150.50, got %f", dto.Valor)
	}
	if dto.Status != models.StatusConfirmado {
		t.Errorf("Expected status CONFIRMADO, got %s", dto.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestUpdatePagamento_NotFound(t *testing.T) {
	db, mock, router := setupPagamentoTest(t)
	defer db.Close()

	mock.ExpectQuery("FROM pagamentos WHERE id = \\$1").
		WithArgs(int64(50)).
		WillReturnRows(sqlmock.NewRows(pagamentoTestColumns))

	body := []byte(`{"valor": 150.50, "pedidoId": 1, "formaDePagamentoId": 2}`)
	req := httptest.NewRequest("PUT", "/pagamentos/50", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestDeletePagamento_Success(t *testing.T) {
	db, mock, router := setupPagamentoTest(t)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("DELETE FROM pagamentos WHERE id = \\$1").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest("DELETE", "/pagamentos/1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status %d, got %d", http.StatusNoContent, w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestDeletePagamento_NotFound(t *testing.T) {
	db, mock, router := setupPagamentoTest(t)
	defer db.Close()

	// Existence check fails; no delete statement may run
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	req := httptest.NewRequest("DELETE", "/pagamentos/100", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestDeleteThenGet_ReturnsNotFound(t *testing.T) {
	db, mock, router := setupPagamentoTest(t)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec("DELETE FROM pagamentos WHERE id = \\$1").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM pagamentos WHERE id = \\$1").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(pagamentoTestColumns))

	req := httptest.NewRequest("DELETE", "/pagamentos/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status %d, got %d", http.StatusNoContent, w.Code)
	}

	req = httptest.NewRequest("GET", "/pagamentos/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d after delete, got %d", http.StatusNotFound, w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}
