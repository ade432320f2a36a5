// internal/infrastructure/storeapi/client_test.go
package storeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coffee-miniapp/internal/domain/catalog"
	"github.com/your-org/coffee-miniapp/internal/domain/checkout"
)

func TestFetchMenu(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/menu", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"guid":"g1","name":"Меню ( онлайн заказы )","itemList":[{"guid":"i1","name":"Латте"}]}}`))
	}))
	defer server.Close()

	menu, err := NewClient(server.URL).FetchMenu(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "g1", menu.GUID)
	require.Len(t, menu.ItemList, 1)
}

func TestFetchMenuNotReady(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Меню загружается, попробуйте через минуту."}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).FetchMenu(context.Background())
	require.Error(t, err)

	var loadErr *catalog.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "menu", loadErr.Resource)
}

func TestFetchAddOnCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/supplements", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":[{"guid":"cat-1","name":"Сиропы"}]}`))
	}))
	defer server.Close()

	categories, err := NewClient(server.URL).FetchAddOnCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "cat-1", categories[0].GUID)
}

func TestCreateOrderDecodesFailureBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/order", r.URL.Path)
		// The backend reports failures in the body with a non-200 status.
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"success":false,"error":"Касса недоступна"}`))
	}))
	defer server.Close()

	result, err := NewClient(server.URL).CreateOrder(context.Background(), &checkout.OrderRequest{})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Касса недоступна", result.Error)
}

func TestCreateOrderSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"order_id":"pos-1","status":"CREATED","total":300}`))
	}))
	defer server.Close()

	result, err := NewClient(server.URL).CreateOrder(context.Background(), &checkout.OrderRequest{})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "pos-1", result.OrderID)
	assert.Equal(t, 300.0, result.Total)
}

func TestPreparePayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payment/prepare", r.URL.Path)
		w.Write([]byte(`{"success":true,"payment_token":"tok-abc"}`))
	}))
	defer server.Close()

	result, err := NewClient(server.URL).PreparePayment(context.Background(), &checkout.OrderRequest{})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "tok-abc", result.PaymentToken)
}
