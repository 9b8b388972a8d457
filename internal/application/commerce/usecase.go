package commerce

import (
	"context"
	"fmt"
	"strings"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/application/dto"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/entity"
	"github.com/Demmoman6666/SBP-CRM-sub004/pkg/logger"
)

// UseCase casos de uso de comercio contra la tienda online.
type UseCase struct {
	store StorefrontGateway
	log   *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(store StorefrontGateway, log *logger.Logger) *UseCase {
	return &UseCase{store: store, log: log}
}

// PushCustomer sincroniza un cliente de salón hacia la tienda.
func (uc *UseCase) PushCustomer(ctx context.Context, in dto.PushCustomerRequest) (*dto.CustomerResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email de cliente obligatorio", domain.ErrInvalidInput)
	}

	customer, err := uc.store.PushCustomer(ctx, entity.Customer{
		Email:     email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		Tags:      in.Tags,
		Note:      in.Note,
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("shopify_id", customer.ShopifyID).
		Str("email", customer.Email).
		Msg("cliente sincronizado con la tienda")

	return &dto.CustomerResponse{
		ShopifyID: customer.ShopifyID,
		Email:     customer.Email,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Phone:     customer.Phone,
		Tags:      customer.Tags,
	}, nil
}

// CreateDraftOrder crea un pedido borrador en la tienda para que el cliente lo
// confirme desde el invoice.
func (uc *UseCase) CreateDraftOrder(ctx context.Context, in dto.CreateDraftOrderRequest) (*dto.DraftOrderResponse, error) {
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: el pedido borrador necesita al menos una línea", domain.ErrInvalidInput)
	}

	lines := make([]entity.DraftOrderLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		if l.Qty <= 0 {
			return nil, fmt.Errorf("%w: cantidad inválida en línea %d", domain.ErrInvalidInput, i)
		}
		if l.VariantID == 0 && (l.Title == "" || l.Price.IsZero()) {
			return nil, fmt.Errorf("%w: línea %d sin variant_id requiere title y price", domain.ErrInvalidInput, i)
		}
		lines = append(lines, entity.DraftOrderLine{
			VariantID: l.VariantID,
			Title:     l.Title,
			SKU:       l.SKU,
			Qty:       l.Qty,
			Price:     l.Price,
		})
	}

	draft, err := uc.store.CreateDraftOrder(ctx, entity.DraftOrder{
		CustomerShopifyID: in.CustomerShopifyID,
		Email:             strings.TrimSpace(in.Email),
		Lines:             lines,
		Note:              in.Note,
		Tags:              in.Tags,
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("draft_order_id", draft.ShopifyID).
		Str("name", draft.Name).
		Int("lines", len(lines)).
		Msg("pedido borrador creado en la tienda")

	return &dto.DraftOrderResponse{
		ShopifyID:  draft.ShopifyID,
		Name:       draft.Name,
		Status:     draft.Status,
		InvoiceURL: draft.InvoiceURL,
		TotalPrice: draft.TotalPrice,
	}, nil
}
