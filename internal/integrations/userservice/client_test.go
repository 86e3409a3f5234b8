package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HS-BookingService/internal/domain"
	"github.com/m04kA/HS-BookingService/pkg/logger"
)

func TestClient_GetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/1":
			_, _ = w.Write([]byte(`{"id":1,"name":"Анна","role":"CUSTOMER"}`))
		case "/internal/users/2":
			_, _ = w.Write([]byte(`{"id":2,"name":"Бот","role":"ROBOT"}`))
		case "/internal/users/3":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.NewNop())
	ctx := context.Background()

	user, err := client.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &domain.User{ID: 1, Name: "Анна", Role: domain.RoleCustomer}, user)

	_, err = client.GetUser(ctx, 2)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetUser(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = client.GetUser(ctx, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
