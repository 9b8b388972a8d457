package commerce_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Demmoman6666/SBP-CRM-sub004/internal/application/commerce"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/application/dto"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain"
	"github.com/Demmoman6666/SBP-CRM-sub004/internal/domain/entity"
	"github.com/Demmoman6666/SBP-CRM-sub004/pkg/logger"
)

// fakeStorefrontGateway registra lo enviado a la tienda y devuelve respuestas fijas.
type fakeStorefrontGateway struct {
	pushedCustomer *entity.Customer
	createdDraft   *entity.DraftOrder
}

func (f *fakeStorefrontGateway) PushCustomer(_ context.Context, c entity.Customer) (entity.Customer, error) {
	f.pushedCustomer = &c
	c.ShopifyID = 7001
	return c, nil
}

func (f *fakeStorefrontGateway) CreateDraftOrder(_ context.Context, d entity.DraftOrder) (entity.DraftOrder, error) {
	f.createdDraft = &d
	d.ShopifyID = 5500
	d.Name = "#D123"
	d.Status = "open"
	return d, nil
}

func newCommerceUseCase(gw *fakeStorefrontGateway) *commerce.UseCase {
	return commerce.NewUseCase(gw, logger.New(logger.Config{Env: "production", Level: "error"}))
}

func TestPushCustomer_NormalizaYSincroniza(t *testing.T) {
	gw := &fakeStorefrontGateway{}
	uc := newCommerceUseCase(gw)

	out, err := uc.PushCustomer(context.Background(), dto.PushCustomerRequest{
		Email:     "  ana@salon.example ",
		FirstName: " Ana ",
		Tags:      []string{"vip"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7001), out.ShopifyID)
	require.NotNil(t, gw.pushedCustomer)
	assert.Equal(t, "ana@salon.example", gw.pushedCustomer.Email, "el email viaja sin espacios")
	assert.Equal(t, "Ana", gw.pushedCustomer.FirstName)
}

func TestPushCustomer_EmailInvalido(t *testing.T) {
	uc := newCommerceUseCase(&fakeStorefrontGateway{})

	cases := []string{"", "   ", "sin-arroba"}
	for _, email := range cases {
		_, err := uc.PushCustomer(context.Background(), dto.PushCustomerRequest{Email: email})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "email %q debe rechazarse", email)
	}
}

func TestCreateDraftOrder_MapeaLineas(t *testing.T) {
	gw := &fakeStorefrontGateway{}
	uc := newCommerceUseCase(gw)

	out, err := uc.CreateDraftOrder(context.Background(), dto.CreateDraftOrderRequest{
		CustomerShopifyID: 7001,
		Lines: []dto.DraftOrderLineRequest{
			{VariantID: 9001, Qty: 2},
			{Title: "Tratamiento a medida", Qty: 1, Price: decimal.NewFromFloat(12.50)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5500), out.ShopifyID)
	assert.Equal(t, "#D123", out.Name)
	require.NotNil(t, gw.createdDraft)
	require.Len(t, gw.createdDraft.Lines, 2)
	assert.Equal(t, int64(7001), gw.createdDraft.CustomerShopifyID)
}

func TestCreateDraftOrder_Invalido(t *testing.T) {
	uc := newCommerceUseCase(&fakeStorefrontGateway{})

	cases := []struct {
		name string
		req  dto.CreateDraftOrderRequest
	}{
		{"sin líneas", dto.CreateDraftOrderRequest{}},
		{"cantidad cero", dto.CreateDraftOrderRequest{
			Lines: []dto.DraftOrderLineRequest{{VariantID: 9001, Qty: 0}},
		}},
		{"personalizada sin precio", dto.CreateDraftOrderRequest{
			Lines: []dto.DraftOrderLineRequest{{Title: "A medida", Qty: 1}},
		}},
		{"personalizada sin título", dto.CreateDraftOrderRequest{
			Lines: []dto.DraftOrderLineRequest{{Qty: 1, Price: decimal.NewFromFloat(5)}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateDraftOrder(context.Background(), tc.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
