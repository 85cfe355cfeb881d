package pos

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mediakasir/apotekpos/lib/myuuid"
)

var (
	paracetamol = Product{ID: "prd-1", Name: "Paracetamol 500mg", Unit: "strip", SellPrice: decimal.NewFromInt(10000), CurrentStock: 10}
	amoxicillin = Product{ID: "prd-2", Name: "Amoxicillin 500mg", Unit: "strip", SellPrice: decimal.NewFromInt(25000), CurrentStock: 1}
	vitaminC    = Product{ID: "prd-3", Name: "Vitamin C 1000mg", Unit: "tube", SellPrice: decimal.NewFromInt(45000), CurrentStock: 0}
)

func TestCart(t *testing.T) {
	t.Run("New engine starts with one cash payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupEngine(ctrl)

		// when
		state := sut.State()

		// then
		assert.Empty(t, state.Lines)
		assert.Equal(t, []PaymentEntry{{ID: "payment-1", Method: PaymentMethodCash}}, state.Payments)
		assert.Equal(t, "0", state.DiscountText)
		assert.False(t, state.Processing)
	})

	t.Run("Add to cart inserts then increments", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupEngine(ctrl)

		// when
		require.NoError(t, sut.AddToCart(paracetamol))
		require.NoError(t, sut.AddToCart(amoxicillin))
		require.NoError(t, sut.AddToCart(paracetamol))

		// then
		state := sut.State()
		require.Len(t, state.Lines, 2)
		assert.Equal(t, "prd-1", state.Lines[0].Product.ID)
		assert.Equal(t, 2, state.Lines[0].Quantity)
		assert.Equal(t, "prd-2", state.Lines[1].Product.ID)
		assert.Equal(t, 1, state.Lines[1].Quantity)
		assert.Equal(t, 3, state.CartCount)
		assert.Equal(t, "45000", state.Subtotal.String())
	})

	t.Run("Add beyond stock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupEngine(ctrl)

		// given
		require.NoError(t, sut.AddToCart(amoxicillin))

		// when
		err := sut.AddToCart(amoxicillin)

		// then
		assert.ErrorIs(t, err, ErrInsufficientStock)
		stockErr := &InsufficientStockError{}
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 1, stockErr.Available)
		assert.Equal(t, "prd-2", stockErr.ProductID)
		assert.Equal(t, "stok tersedia hanya 1", err.Error())
		assert.Equal(t, 1, sut.State().Lines[0].Quantity)
	})

	t.Run("Add out of stock product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupEngine(ctrl)

		// when
		err := sut.AddToCart(vitaminC)

		// then
		assert.ErrorIs(t, err, ErrOutOfStock)
		assert.Equal(t, "Vitamin C 1000mg stok habis", err.Error())
		assert.Empty(t, sut.State().Lines)
	})

	t.Run("Add checks stock of the product passed in and keeps it as snapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupEngine(ctrl)

		// given
		require.NoError(t, sut.AddToCart(paracetamol))
		require.NoError(t, sut.AddToCart(paracetamol))
		reloaded := paracetamol
		reloaded.CurrentStock = 2

		// when
		err := sut.AddToCart(reloaded)

		// then
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, 10, sut.State().Lines[0].Product.CurrentStock)

		// when
		reloaded.CurrentStock = 3
		reloaded.SellPrice = decimal.NewFromInt(11000)
		err = sut.AddToCart(reloaded)

		// then
		assert.NoError(t, err)
		line := sut.State().Lines[0]
		assert.Equal(t, 3, line.Quantity)
		assert.Equal(t, 3, line.Product.CurrentStock)
		assert.Equal(t, "33000", sut.Subtotal().String())
	})

	t.Run("Update quantity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupEngine(ctrl)

		// given
		require.NoError(t, sut.AddToCart(paracetamol))

		// when
		err := sut.UpdateQuantity(paracetamol.ID, 4)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 5, sut.CartCount())

		// when
		err = sut.UpdateQuantity(paracetamol.ID, -2)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 3, sut.CartCount())
	})

	t.Run("Update quantity beyond stock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupEngine(ctrl)

		// given
		require.NoError(t, sut.AddToCart(paracetamol))

		// when
		err := sut.UpdateQuantity(paracetamol.ID, 10)

		// then
		stockErr := &InsufficientStockError{}
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 10, stockErr.Available)
		assert.Equal(t, 1, sut.CartCount())
	})

	t.Run("Update quantity to zero or below keeps the line", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupEngine(ctrl)

		// given
		require.NoError(t, sut.AddToCart(paracetamol))
		require.NoError(t, sut.UpdateQuantity(paracetamol.ID, 1))

		// when
		err := sut.UpdateQuantity(paracetamol.ID, -2)
		assert.NoError(t, err)
		err = sut.UpdateQuantity(paracetamol.ID, -5)
		assert.NoError(t, err)

		// then
		state := sut.State()
		require.Len(t, state.Lines, 1)
		assert.Equal(t, 2, state.Lines[0].Quantity)
	})

	t.Run("Update quantity of unknown product is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupEngine(ctrl)

		// when
		err := sut.UpdateQuantity("unknown", 1)

		// then
		assert.NoError(t, err)
		assert.Empty(t, sut.State().Lines)
	})

	t.Run("Remove from cart is idempotent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupEngine(ctrl)

		// given
		require.NoError(t, sut.AddToCart(paracetamol))
		require.NoError(t, sut.AddToCart(amoxicillin))

		// when
		assert.NoError(t, sut.RemoveFromCart(paracetamol.ID))
		before := sut.State()
		assert.NoError(t, sut.RemoveFromCart(paracetamol.ID))

		// then
		assert.Equal(t, before, sut.State())
		require.Len(t, before.Lines, 1)
		assert.Equal(t, amoxicillin.ID, before.Lines[0].Product.ID)
	})
}

func TestPayments(t *testing.T) {
	t.Run("Added payment defaults to transfer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupEngine(ctrl)

		// when
		entry, err := sut.AddPayment()

		// then
		assert.NoError(t, err)
		assert.Equal(t, PaymentEntry{ID: "payment-2", Method: PaymentMethodTransfer}, entry)
		assert.Len(t, sut.State().Payments, 2)
	})

	t.Run("Update payment changes only given fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupEngine(ctrl)

		// given
		method := PaymentMethod("qris")
		amount := "15000"
		reference := "QR-778812"
		require.NoError(t, sut.UpdatePayment("payment-1", PaymentUpdate{Amount: &amount}))

		// when
		err := sut.UpdatePayment("payment-1", PaymentUpdate{Method: &method, Reference: &reference})

		// then
		assert.NoError(t, err)
		assert.Equal(t, PaymentEntry{ID: "payment-1", Method: PaymentMethodQRIS, Amount: "15000", Reference: "QR-778812"}, sut.State().Payments[0])
	})

	t.Run("Update payment with unknown method", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupEngine(ctrl)

		// when
		method := PaymentMethod("cheque")
		amount := "15000"
		err := sut.UpdatePayment("payment-1", PaymentUpdate{Method: &method, Amount: &amount})

		// then
		assert.ErrorIs(t, err, ErrUnknownPaymentMethod)
		assert.Equal(t, PaymentEntry{ID: "payment-1", Method: PaymentMethodCash}, sut.State().Payments[0])
	})

	t.Run("Unknown payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupEngine(ctrl)

		// when
		amount := "15000"
		err1 := sut.UpdatePayment("unknown", PaymentUpdate{Amount: &amount})
		err2 := sut.RemovePayment("unknown")

		// then
		assert.ErrorIs(t, err1, ErrPaymentNotFound)
		assert.ErrorIs(t, err2, ErrPaymentNotFound)
	})

	t.Run("All payments can be removed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupEngine(ctrl)

		// when
		err := sut.RemovePayment("payment-1")

		// then
		assert.NoError(t, err)
		assert.Empty(t, sut.State().Payments)
		assert.True(t, sut.TotalPaid().IsZero())
	})

	t.Run("Multiple payments add up", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, _ := setupEngine(ctrl)

		// given
		require.NoError(t, sut.AddToCart(paracetamol))
		require.NoError(t, sut.AddToCart(paracetamol))
		setAmount(t, sut, "payment-1", "5000")
		entry, err := sut.AddPayment()
		require.NoError(t, err)
		method := PaymentMethodQRIS
		amount := "15000"
		require.NoError(t, sut.UpdatePayment(entry.ID, PaymentUpdate{Method: &method, Amount: &amount}))

		// when
		state := sut.State()

		// then
		assert.Equal(t, "20000", state.Total.String())
		assert.Equal(t, "20000", state.TotalPaid.String())
		assert.Equal(t, "0", state.Change.String())
	})
}

func TestTotals(t *testing.T) {
	testCases := []struct {
		name           string
		discount       string
		payments       []string
		expectDiscount string
		expectTotal    string
		expectPaid     string
		expectChange   string
		expectDisplay  string
	}{
		{name: "no discount", discount: "0", payments: []string{"20000"}, expectDiscount: "0", expectTotal: "20000", expectPaid: "20000", expectChange: "0", expectDisplay: "0"},
		{name: "invalid discount", discount: "abc", payments: []string{"25000"}, expectDiscount: "0", expectTotal: "20000", expectPaid: "25000", expectChange: "5000", expectDisplay: "5000"},
		{name: "empty discount", discount: "", payments: []string{""}, expectDiscount: "0", expectTotal: "20000", expectPaid: "0", expectChange: "-20000", expectDisplay: "0"},
		{name: "discount", discount: "5000", payments: []string{"10000", "x"}, expectDiscount: "5000", expectTotal: "15000", expectPaid: "10000", expectChange: "-5000", expectDisplay: "0"},
		{name: "padded discount", discount: " 2500.50 ", payments: []string{" 17500 "}, expectDiscount: "2500.5", expectTotal: "17499.5", expectPaid: "17500", expectChange: "0.5", expectDisplay: "0.5"},
		{name: "discount above subtotal", discount: "50000", payments: []string{}, expectDiscount: "50000", expectTotal: "0", expectPaid: "0", expectChange: "0", expectDisplay: "0"},
		{name: "tiny exponent discount", discount: "1e-50000000", payments: []string{"1e-50000000"}, expectDiscount: "0", expectTotal: "20000", expectPaid: "0", expectChange: "-20000", expectDisplay: "0"},
		{name: "huge exponent discount", discount: "1e50000000", payments: []string{"2E3", "20000"}, expectDiscount: "0", expectTotal: "20000", expectPaid: "20000", expectChange: "0", expectDisplay: "0"},
		{name: "long fraction is truncated", discount: "0.123456789123", payments: []string{"20000.000000001"}, expectDiscount: "0.12345678", expectTotal: "19999.87654322", expectPaid: "20000", expectChange: "0.12345678", expectDisplay: "0.12345678"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// setup
			sut, _, _ := setupEngine(ctrl)

			// given
			require.NoError(t, sut.AddToCart(paracetamol))
			require.NoError(t, sut.AddToCart(paracetamol))
			require.NoError(t, sut.SetDiscount(tc.discount))
			require.NoError(t, sut.RemovePayment("payment-1"))
			for _, amount := range tc.payments {
				entry, err := sut.AddPayment()
				require.NoError(t, err)
				setAmount(t, sut, entry.ID, amount)
			}

			// when
			state := sut.State()

			// then
			assert.Equal(t, tc.discount, state.DiscountText)
			assert.Equal(t, "20000", state.Subtotal.String())
			assert.Equal(t, tc.expectDiscount, state.DiscountAmount.String())
			assert.Equal(t, tc.expectTotal, state.Total.String())
			assert.Equal(t, tc.expectPaid, state.TotalPaid.String())
			assert.Equal(t, tc.expectChange, state.Change.String())
			assert.Equal(t, tc.expectDisplay, state.ChangeDisplay.String())
		})
	}
}

func TestSubscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	sut, _, _ := setupEngine(ctrl)

	// given
	received := []State{}
	unsubscribe := sut.Subscribe(func(s State) {
		received = append(received, s)
	})

	// when
	require.NoError(t, sut.AddToCart(paracetamol))
	require.NoError(t, sut.SetDiscount("1000"))
	require.NoError(t, sut.UpdateQuantity("unknown", 1))
	unsubscribe()
	require.NoError(t, sut.AddToCart(paracetamol))

	// then
	require.Len(t, received, 2)
	assert.Equal(t, 1, received[0].CartCount)
	assert.Equal(t, "9000", received[1].Total.String())
}

func TestEngineKeepsItsLockPrivate(t *testing.T) {
	engineType := reflect.TypeOf(&Engine{})

	for _, name := range []string{"Lock", "Unlock", "TryLock"} {
		_, exported := engineType.MethodByName(name)
		assert.False(t, exported, name)
	}
}

func TestStateIsACopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	sut, _, _ := setupEngine(ctrl)

	// given
	require.NoError(t, sut.AddToCart(paracetamol))
	state := sut.State()

	// when
	state.Lines[0].Quantity = 99
	state.Payments[0].Amount = "1000000"

	// then
	assert.Equal(t, 1, sut.CartCount())
	assert.True(t, sut.TotalPaid().IsZero())
}

// TestRandomCartOperations drives the engine with random operations and checks the
// cart against a simple model after every step.
func TestRandomCartOperations(t *testing.T) {
	discounts := []string{"0", "", "abc", "2500", "1000000", "12.5"}
	amounts := []string{"", "0", "x", "5000", "20000", "-500", "99999.99"}

	for seed := int64(1); seed <= 50; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// setup
			sut, _, _ := setupEngine(ctrl)
			rnd := rand.New(rand.NewSource(seed))
			catalog := randomCatalog(rnd)
			quantities := map[string]int{}
			stocks := map[string]int{}

			for step := 0; step < 200; step++ {
				p := catalog[rnd.Intn(len(catalog))]

				switch rnd.Intn(7) {
				case 0, 1:
					// a reload may have changed the stock
					p.CurrentStock = rnd.Intn(6)
					err := sut.AddToCart(p)
					switch {
					case p.CurrentStock <= 0:
						assert.ErrorIs(t, err, ErrOutOfStock)
					case quantities[p.ID]+1 > p.CurrentStock:
						assert.ErrorIs(t, err, ErrInsufficientStock)
					default:
						assert.NoError(t, err)
						quantities[p.ID]++
						stocks[p.ID] = p.CurrentStock
					}
				case 2:
					delta := rnd.Intn(7) - 3
					err := sut.UpdateQuantity(p.ID, delta)
					qty, exists := quantities[p.ID]
					switch {
					case !exists || qty+delta <= 0:
						assert.NoError(t, err)
					case qty+delta > stocks[p.ID]:
						assert.ErrorIs(t, err, ErrInsufficientStock)
					default:
						assert.NoError(t, err)
						quantities[p.ID] = qty + delta
					}
				case 3:
					assert.NoError(t, sut.RemoveFromCart(p.ID))
					delete(quantities, p.ID)
					delete(stocks, p.ID)
				case 4:
					assert.NoError(t, sut.SetDiscount(discounts[rnd.Intn(len(discounts))]))
				case 5:
					_, err := sut.AddPayment()
					assert.NoError(t, err)
				case 6:
					payments := sut.State().Payments
					if len(payments) > 0 {
						amount := amounts[rnd.Intn(len(amounts))]
						setAmount(t, sut, payments[rnd.Intn(len(payments))].ID, amount)
					}
				}

				assertConsistent(t, sut.State(), quantities)
			}
		})
	}
}

func assertConsistent(t *testing.T, state State, quantities map[string]int) {
	t.Helper()

	seen := map[string]bool{}
	subtotal := decimal.Zero
	count := 0
	for _, l := range state.Lines {
		assert.False(t, seen[l.Product.ID], "duplicate line for %s", l.Product.ID)
		seen[l.Product.ID] = true
		assert.GreaterOrEqual(t, l.Quantity, 1)
		assert.LessOrEqual(t, l.Quantity, l.Product.CurrentStock)
		assert.Equal(t, quantities[l.Product.ID], l.Quantity)
		subtotal = subtotal.Add(l.Product.SellPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		count += l.Quantity
	}
	assert.Len(t, state.Lines, len(quantities))

	paid := decimal.Zero
	for _, p := range state.Payments {
		paid = paid.Add(parseAmount(p.Amount))
	}

	assert.True(t, subtotal.Equal(state.Subtotal), "subtotal %s != %s", subtotal, state.Subtotal)
	assert.True(t, decimal.Max(decimal.Zero, subtotal.Sub(parseAmount(state.DiscountText))).Equal(state.Total))
	assert.False(t, state.Total.IsNegative())
	assert.True(t, paid.Equal(state.TotalPaid))
	assert.True(t, paid.Sub(state.Total).Equal(state.Change))
	assert.Equal(t, count, state.CartCount)
}

func randomCatalog(rnd *rand.Rand) []Product {
	catalog := []Product{}
	for i := 0; i < 4; i++ {
		catalog = append(catalog, Product{
			ID:           fmt.Sprintf("prd-%d", i),
			Name:         fmt.Sprintf("Product %d", i),
			Unit:         "pcs",
			SellPrice:    decimal.NewFromInt(int64(rnd.Intn(100) * 500)),
			CurrentStock: rnd.Intn(6),
		})
	}
	return catalog
}

func setAmount(t *testing.T, e *Engine, paymentID string, amount string) {
	t.Helper()
	require.NoError(t, e.UpdatePayment(paymentID, PaymentUpdate{Amount: &amount}))
}

func setupEngine(ctrl *gomock.Controller) (*Engine, *MockCatalogProvider, *MockTransactionService) {
	catalog := NewMockCatalogProvider(ctrl)
	transactions := NewMockTransactionService(ctrl)
	sut := NewEngine(catalog, transactions, sequentialUUIDer(ctrl), 0)
	return sut, catalog, transactions
}

func sequentialUUIDer(ctrl *gomock.Controller) myuuid.UUIDer {
	uuider := myuuid.NewMockUUIDer(ctrl)
	count := 0
	uuider.EXPECT().Create().DoAndReturn(func() string {
		count++
		return fmt.Sprintf("payment-%d", count)
	}).AnyTimes()
	return uuider
}
