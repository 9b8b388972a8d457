package replenishment

import (
	"context"
	"fmt"
	"strings"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/repository"
)

// PDFUseCase genera la versión imprimible de una orden de compra para enviar al
// proveedor. Solo se exige que el intento tenga cabecera remota: un intento
// parcial se imprime igualmente, con la advertencia de líneas pendientes.
type PDFUseCase struct {
	attempts  repository.OrderAttemptRepository
	generator OrderPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(attempts repository.OrderAttemptRepository, generator OrderPDFGenerator) *PDFUseCase {
	return &PDFUseCase{attempts: attempts, generator: generator}
}

// DownloadOrderPDF recupera el intento y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el intento no existe.
//   - domain.ErrConflict         si nunca se creó la cabecera (no hay orden que imprimir).
func (uc *PDFUseCase) DownloadOrderPDF(ctx context.Context, attemptID string) (pdfBytes []byte, filename string, err error) {
	attempt, err := uc.attempts.GetByID(ctx, attemptID)
	if err != nil {
		return nil, "", err
	}
	if attempt.PurchaseID == "" {
		return nil, "", fmt.Errorf("%w: intento %s sin cabecera remota, no hay orden que imprimir",
			domain.ErrConflict, attemptID)
	}

	pdfBytes, err = uc.generator.GeneratePurchaseOrderPDF(ctx, attempt)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	ref := strings.ReplaceAll(attempt.PurchaseID, "/", "-")
	filename = fmt.Sprintf("orden_compra_%s.pdf", ref)
	return pdfBytes, filename, nil
}
