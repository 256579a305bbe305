package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"easylease-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method      string
	path        string
	query       string
	contentType string
	body        []byte
}

func fakeBackend(t *testing.T, status int, response string) (*Client, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.query = r.URL.RawQuery
		got.contentType = r.Header.Get("Content-Type")
		got.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api", time.Second), got
}

func TestListListings_UnwrapsEnvelopeAndEncodesParams(t *testing.T) {
	c, got := fakeBackend(t, 200, `{"success":true,"count":2,"data":[{"_id":"a","title":"A","status":"draft"},{"_id":"b","title":"B","status":"published"}]}`)

	listings, err := c.ListListings(context.Background(), Params{"status": "published", "limit": "10", "suburb": ""})
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "b", listings[1].ID)
	assert.Equal(t, domain.ListingPublished, listings[1].Status)

	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/api/listings/admin/all", got.path)
	assert.Equal(t, "limit=10&status=published", got.query)
}

func TestListListings_NoParamsNoQuery(t *testing.T) {
	c, got := fakeBackend(t, 200, `{"success":true,"data":[]}`)
	listings, err := c.ListListings(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, listings)
	assert.Equal(t, "", got.query)
}

func TestPublicListingRoutes(t *testing.T) {
	c, got := fakeBackend(t, 200, `{"success":true,"data":{"_id":"a","slug":"piso centro","status":"published"}}`)
	l, err := c.GetListingBySlug(context.Background(), "piso centro")
	require.NoError(t, err)
	assert.Equal(t, "a", l.ID)
	assert.Equal(t, "/api/listings/slug/piso centro", got.path)

	c, got = fakeBackend(t, 200, `{"success":true,"data":[{"_id":"a"}]}`)
	listings, err := c.ListPublishedListings(context.Background(), Params{"room_type": "double"})
	require.NoError(t, err)
	assert.Len(t, listings, 1)
	assert.Equal(t, "/api/listings", got.path)
	assert.Equal(t, "room_type=double", got.query)
}

func TestGetListing_BarePayload(t *testing.T) {
	c, got := fakeBackend(t, 200, `{"_id":"abc","title":"Bare"}`)
	l, err := c.GetListing(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Bare", l.Title)
	assert.Equal(t, "/api/listings/admin/abc", got.path)
}

func TestGetListing_DataWithoutEnvelope(t *testing.T) {
	c, _ := fakeBackend(t, 200, `{"data":{"_id":"abc","title":"Wrapped"}}`)
	l, err := c.GetListing(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Wrapped", l.Title)
}

func TestGetListing_NotFound(t *testing.T) {
	c, _ := fakeBackend(t, 404, `{"success":false,"error":"Listing not found"}`)
	l, err := c.GetListing(context.Background(), "999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Listing not found", err.Error())
	assert.Equal(t, domain.Listing{}, l)
}

func TestErrorWithoutBody(t *testing.T) {
	c, _ := fakeBackend(t, 502, `<html>bad gateway</html>`)
	_, err := c.ListLeads(context.Background(), "")
	require.Error(t, err)
	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 502, be.StatusCode)
	assert.Equal(t, "HTTP error! status: 502", be.Message)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestSuccessFalseOn200(t *testing.T) {
	c, _ := fakeBackend(t, 200, `{"success":false,"error":"Invalid status"}`)
	_, err := c.UpdatePartnerStatus(context.Background(), "p1", domain.PartnerActive)
	require.Error(t, err)
	assert.Equal(t, "Invalid status", Message(err))
}

func TestNestedErrorMessage(t *testing.T) {
	c, _ := fakeBackend(t, 400, `{"status":"error","error":{"message":"title is required"}}`)
	_, err := c.CreateListing(context.Background(), domain.ListingInput{})
	require.Error(t, err)
	assert.Equal(t, "title is required", Message(err))
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := New(base, time.Second)
	_, err := c.ListPartners(context.Background(), "")
	require.Error(t, err)
	var be *Error
	assert.False(t, errors.As(err, &be))
	assert.Contains(t, err.Error(), "GET /partners")
}

func TestMalformedSuccessBodyIsAnError(t *testing.T) {
	c, _ := fakeBackend(t, 200, `{"success":true,"data":{"_id":5}}`)
	l, err := c.GetLead(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, domain.Lead{}, l)
}

func TestUpdateListingStatus_PutsStatusOnly(t *testing.T) {
	c, got := fakeBackend(t, 200, `{"success":true,"data":{"_id":"a","status":"published"}}`)
	l, err := c.UpdateListingStatus(context.Background(), "a", domain.ListingPublished)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingPublished, l.Status)
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/api/listings/a", got.path)
	assert.JSONEq(t, `{"status":"published"}`, string(got.body))
	assert.Equal(t, "application/json", got.contentType)
}

func TestUpdateLeadStatus_Patch(t *testing.T) {
	c, got := fakeBackend(t, 200, `{"success":true,"data":{"_id":"L1","status":"contacted"}}`)
	lead, err := c.UpdateLeadStatus(context.Background(), "L1", domain.LeadContacted)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadContacted, lead.Status)
	assert.Equal(t, http.MethodPatch, got.method)
	assert.Equal(t, "/api/leads/L1/status", got.path)
	assert.JSONEq(t, `{"status":"contacted"}`, string(got.body))
}

func TestListLeads_StatusFilter(t *testing.T) {
	c, got := fakeBackend(t, 200, `{"success":true,"data":[]}`)
	_, err := c.ListLeads(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, "status=new", got.query)
}

func TestCreateLead(t *testing.T) {
	c, got := fakeBackend(t, 201, `{"success":true,"data":{"_id":"L1","name":"Ana","email":"ana@x.com","status":"new"}}`)
	lead, err := c.CreateLead(context.Background(), domain.LeadInput{Name: "Ana", Email: "ana@x.com", Status: domain.LeadNew})
	require.NoError(t, err)
	assert.Equal(t, "L1", lead.ID)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/leads", got.path)
	assert.JSONEq(t, `{"name":"Ana","email":"ana@x.com","phone":"","message":"","status":"new"}`, string(got.body))
}

func TestDeletePartner(t *testing.T) {
	c, got := fakeBackend(t, 200, `{"success":true,"data":{"message":"Partner deleted"}}`)
	msg, err := c.DeletePartner(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Partner deleted", msg.Message)
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/api/partners/p1", got.path)
}

func TestEmptyIDNeverHitsTheNetwork(t *testing.T) {
	c, got := fakeBackend(t, 200, `{}`)
	_, err := c.DeleteListing(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, "", got.method)
}

func TestUploadImages_Multipart(t *testing.T) {
	var folder string
	var names []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		folder = r.FormValue("folder")
		for _, fh := range r.MultipartForm.File["images"] {
			names = append(names, fh.Filename)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"uploadedUrls": []string{"https://cdn/1.jpg", "https://cdn/2.jpg"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	urls, err := c.UploadImages(context.Background(), "listings", []UploadFile{
		{Name: "one.jpg", ContentType: "image/jpeg", Data: strings.NewReader("1")},
		{Name: "two.png", ContentType: "image/png", Data: strings.NewReader("2")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/1.jpg", "https://cdn/2.jpg"}, urls)
	assert.Equal(t, "listings", folder)
	assert.Equal(t, []string{"one.jpg", "two.png"}, names)
}

func TestUploadImages_Failure(t *testing.T) {
	c, _ := fakeBackend(t, 200, `{"success":false,"error":"File too large"}`)
	urls, err := c.UploadImages(context.Background(), "listings", []UploadFile{{Name: "a.jpg", Data: strings.NewReader("x")}})
	require.Error(t, err)
	assert.Nil(t, urls)
	assert.Equal(t, "File too large", Message(err))
}

func TestDeleteImage(t *testing.T) {
	c, got := fakeBackend(t, 200, `{"success":true,"data":null}`)
	require.NoError(t, c.DeleteImage(context.Background(), "https://cdn/1.jpg"))
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/api/listings/delete-image", got.path)
	assert.JSONEq(t, `{"imageUrl":"https://cdn/1.jpg"}`, string(got.body))
}

func TestHealth(t *testing.T) {
	c, got := fakeBackend(t, 200, `{"ok":true,"status":"healthy","timestamp":"2024-01-01T00:00:00Z"}`)
	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, h.OK)
	assert.Equal(t, "/api/health", got.path)
}

func TestDetail(t *testing.T) {
	c, _ := fakeBackend(t, 422, `{"error":"Slug already exists"}`)
	_, err := c.UpdateListing(context.Background(), "a", domain.ListingInput{})
	d, ok := Detail(err)
	assert.True(t, ok)
	assert.Equal(t, "Slug already exists", d)

	c, _ = fakeBackend(t, 500, ``)
	_, err = c.UpdateListing(context.Background(), "a", domain.ListingInput{})
	_, ok = Detail(err)
	assert.False(t, ok)
	assert.Equal(t, "HTTP error! status: 500", Message(err))
}
