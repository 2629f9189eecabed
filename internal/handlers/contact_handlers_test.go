package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nevskiy911/contacts-api/internal/models"
	"github.com/Nevskiy911/contacts-api/internal/service"
)

func TestContacts_RequireAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodGet, "/contacts", nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authenticated", errorMessage(t, rec))

	rec = env.doJSON(http.MethodGet, "/contacts", nil, bearer("not-a-jwt"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Could not validate credentials", errorMessage(t, rec))
}

func TestContacts_RefreshTokenNotUsableAsAccess(t *testing.T) {
	env := newTestEnv(t)
	pair := signupConfirmLogin(t, env, "a@x.com", "bob", "pw123")

	rec := env.doJSON(http.MethodGet, "/contacts", nil, bearer(pair.RefreshToken))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestContacts_CRUD(t *testing.T) {
	env := newTestEnv(t)
	pair := signupConfirmLogin(t, env, "a@x.com", "bob", "pw123")
	auth := bearer(pair.AccessToken)

	rec := env.doJSON(http.MethodPost, "/contacts", service.ContactInput{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "+380501112233",
		Birthday:    "1815-12-10",
	}, auth)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	path := fmt.Sprintf("/contacts/%d", created.ID)

	rec = env.doJSON(http.MethodGet, path, nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodGet, "/contacts", nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	rec = env.doJSON(http.MethodPut, path, service.ContactInput{
		FirstName: "Ada",
		LastName:  "King",
	}, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "King", updated.LastName)

	rec = env.doJSON(http.MethodDelete, path, nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodGet, path, nil, auth)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Contact not found", errorMessage(t, rec))
}

func TestContacts_OtherAccountCannotSee(t *testing.T) {
	env := newTestEnv(t)
	owner := signupConfirmLogin(t, env, "owner@x.com", "owner", "pw123")
	other := signupConfirmLogin(t, env, "other@x.com", "other", "pw123")

	rec := env.doJSON(http.MethodPost, "/contacts", service.ContactInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
	}, bearer(owner.AccessToken))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	path := fmt.Sprintf("/contacts/%d", created.ID)
	rec = env.doJSON(http.MethodGet, path, nil, bearer(other.AccessToken))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.doJSON(http.MethodDelete, path, nil, bearer(other.AccessToken))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContacts_AllRequiresElevatedRole(t *testing.T) {
	env := newTestEnv(t)

	user := signupConfirmLogin(t, env, "user@x.com", "user", "pw123")
	rec := env.doJSON(http.MethodGet, "/contacts/all", nil, bearer(user.AccessToken))
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Operation forbidden", errorMessage(t, rec))

	moderator := loginAs(t, env, models.RoleModerator, "mod@x.com")
	rec = env.doJSON(http.MethodGet, "/contacts/all", nil, bearer(moderator.AccessToken))
	require.Equal(t, http.StatusOK, rec.Code)

	admin := loginAs(t, env, models.RoleAdmin, "admin@x.com")
	rec = env.doJSON(http.MethodGet, "/contacts/all", nil, bearer(admin.AccessToken))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestContacts_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	pair := signupConfirmLogin(t, env, "a@x.com", "bob", "pw123")

	rec := env.doJSON(http.MethodPost, "/contacts", service.ContactInput{
		FirstName: "Ada",
	}, bearer(pair.AccessToken))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContacts_BadIDParam(t *testing.T) {
	env := newTestEnv(t)
	pair := signupConfirmLogin(t, env, "a@x.com", "bob", "pw123")

	rec := env.doJSON(http.MethodGet, "/contacts/abc", nil, bearer(pair.AccessToken))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContacts_SearchRequiresQueryAndIndex(t *testing.T) {
	env := newTestEnv(t)
	pair := signupConfirmLogin(t, env, "a@x.com", "bob", "pw123")

	rec := env.doJSON(http.MethodGet, "/contacts/search", nil, bearer(pair.AccessToken))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// No index wired in the test env.
	rec = env.doJSON(http.MethodGet, "/contacts/search?q=ada", nil, bearer(pair.AccessToken))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestContacts_Birthdays(t *testing.T) {
	env := newTestEnv(t)
	pair := signupConfirmLogin(t, env, "a@x.com", "bob", "pw123")
	auth := bearer(pair.AccessToken)

	rec := env.doJSON(http.MethodGet, "/contacts/birthdays", nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list)
}
