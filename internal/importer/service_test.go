package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsharma/sellsathi/internal/importer"
	"github.com/rsharma/sellsathi/internal/ledger"
	"github.com/rsharma/sellsathi/internal/ledger/store"
)

func TestService_Parse(t *testing.T) {
	svc := importer.NewService()

	input := "Product Name,Buy Price,Sell Price,Quantity\n" +
		"Pen,5.00,10.00,100\n"

	params, err := svc.Parse(importer.FormatStockCSV, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, "Pen", params[0].Name)

	_, err = svc.Parse(importer.Format("xlsx"), strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown import format")
}

func TestService_Apply(t *testing.T) {
	svc := importer.NewService()
	led := ledger.NewService(store.New())
	ctx := context.Background()

	// Seed a product so the import hits a duplicate.
	_, err := led.AddStockItem(ctx, ledger.AddStockParams{
		Name: "Pen", BuyPrice: 500, SellPrice: 1000, Quantity: 100,
	})
	require.NoError(t, err)

	params := []ledger.AddStockParams{
		{Name: "Notebook", BuyPrice: 1250, SellPrice: 2000, Quantity: 50},
		{Name: "Pen", BuyPrice: 500, SellPrice: 1000, Quantity: 10},     // duplicate
		{Name: "Ruler", BuyPrice: 200, SellPrice: 300, Quantity: 0},     // invalid quantity
		{Name: "Stapler", BuyPrice: 800, SellPrice: 1500, Quantity: 12},
	}

	result := svc.Apply(ctx, led, params)

	require.Len(t, result.Added, 2)
	assert.Equal(t, "Notebook", result.Added[0].Name)
	assert.Equal(t, "Stapler", result.Added[1].Name)

	require.Len(t, result.Rejected, 2)
	assert.Equal(t, 2, result.Rejected[0].Row)
	assert.Equal(t, "Pen", result.Rejected[0].Name)
	assert.ErrorIs(t, result.Rejected[0].Err, ledger.ErrDuplicateProduct)
	assert.Equal(t, 3, result.Rejected[1].Row)
	assert.ErrorIs(t, result.Rejected[1].Err, ledger.ErrInvalidInput)

	// The duplicate row did not mutate the existing product.
	pen, err := led.GetProduct(ctx, "Pen")
	require.NoError(t, err)
	assert.Equal(t, int64(100), pen.QuantityOnHand)
}
