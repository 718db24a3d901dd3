package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/apperrors"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/models"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

// SheetClient bicara ke web-app endpoint berbasis spreadsheet yang menyimpan
// catatan pengeluaran. Kontrak: GET -> {success, data: rows}, POST -> append
// satu row. Append di sini menunggu respons (acknowledged write), bukan
// fire-and-forget seperti dashboard lama.
type SheetClient struct {
	baseURL string
	httpc   *http.Client
}

func NewSheetClient(baseURL string) *SheetClient {
	return &SheetClient{
		baseURL: baseURL,
		httpc: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type sheetEnvelope struct {
	Success bool                  `json:"success"`
	Data    []models.ExpenseEntry `json:"data"`
	Error   string                `json:"error,omitempty"`
}

// FetchEntries mengambil semua baris. Baris yang tidak lolos validasi
// di-skip dengan warning, tidak menggagalkan seluruh load.
func (sc *SheetClient) FetchEntries(ctx context.Context) ([]models.ExpenseEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sc.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistenceUnavailable, err)
	}

	resp, err := sc.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrPersistenceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: sheet endpoint returned %d", apperrors.ErrPersistenceUnavailable, resp.StatusCode)
	}

	var envelope sheetEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", apperrors.ErrPersistenceUnavailable, err)
	}
	if !envelope.Success {
		return nil, fmt.Errorf("%w: sheet endpoint reported failure: %s", apperrors.ErrPersistenceUnavailable, envelope.Error)
	}

	entries := make([]models.ExpenseEntry, 0, len(envelope.Data))
	for i := range envelope.Data {
		entry := envelope.Data[i]
		if err := entry.Validate(); err != nil {
			utils.ErrorLogger.Printf("sheet: skipping invalid row %d: %v", i, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// AppendEntry menulis satu baris baru dan menunggu konfirmasi endpoint.
func (sc *SheetClient) AppendEntry(ctx context.Context, entry models.ExpenseEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: marshal entry: %v", apperrors.ErrValidationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sc.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := sc.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrPersistenceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%w: sheet endpoint returned %d", apperrors.ErrPersistenceUnavailable, resp.StatusCode)
	}

	var envelope sheetEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && !envelope.Success {
		return fmt.Errorf("%w: sheet endpoint rejected row: %s", apperrors.ErrPersistenceUnavailable, envelope.Error)
	}
	return nil
}
