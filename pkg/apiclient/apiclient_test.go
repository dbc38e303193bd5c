package apiclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hireflow/pkg/apiclient"
	"github.com/dmitrymomot/hireflow/pkg/apierr"
	"github.com/dmitrymomot/hireflow/pkg/gateway"
	"github.com/dmitrymomot/hireflow/pkg/kvstore"
	"github.com/dmitrymomot/hireflow/pkg/session"
)

type fixture struct {
	client   *apiclient.Client
	sessions *session.Store
	expired  atomic.Int32
}

func newFixture(t *testing.T, router http.Handler) *fixture {
	t.Helper()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	f := &fixture{sessions: session.New(kvstore.NewMemory(), nil)}
	client, err := apiclient.New(f.sessions,
		apiclient.WithBaseURL(srv.URL),
		apiclient.WithHTTPClient(srv.Client()),
		apiclient.WithExpiryObserver(gateway.ExpiryFunc(func(context.Context, gateway.SessionExpired) {
			f.expired.Add(1)
		})),
	)
	require.NoError(t, err)
	f.client = client
	return f
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func loginHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		if r.PostForm.Get("username") != "m@x.com" || r.PostForm.Get("password") != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Incorrect email or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "abc123",
			"token_type":   "bearer",
			"user_id":      "u1",
			"user_role":    "manager",
			"user_email":   "m@x.com",
			"user_name":    "M X",
		})
	}
}

func TestNew_RequiresSessionStore(t *testing.T) {
	t.Parallel()

	_, err := apiclient.New(nil)
	require.ErrorIs(t, err, apiclient.ErrNoSessionStore)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Post(apiclient.LoginPath, loginHandler(t))
	f := newFixture(t, r)
	ctx := context.Background()

	res, err := f.client.Login(ctx, "m@x.com", "secret")
	require.NoError(t, err)

	require.Equal(t, "abc123", f.sessions.Token(ctx))
	require.Equal(t, session.RoleManager, f.sessions.Role(ctx))
	require.Equal(t, "/manager", session.DashboardPath(f.sessions.Role(ctx)))
	require.Equal(t, "/manager", res.RedirectTo)
	require.Equal(t, "M X", res.Profile.Name)
	require.Equal(t, "u1", res.Profile.UserID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Post(apiclient.LoginPath, loginHandler(t))
	f := newFixture(t, r)
	ctx := context.Background()

	_, err := f.client.Login(ctx, "m@x.com", "wrong")
	require.Error(t, err)
	require.Equal(t, "Email ou mot de passe incorrect", err.Error())
	require.Equal(t, http.StatusUnauthorized, apierr.StatusOf(err))

	require.False(t, f.sessions.IsAuthenticated(ctx))
	require.Zero(t, f.expired.Load())
}

func TestLogin_SendsTenantHeader(t *testing.T) {
	t.Parallel()

	var tenant atomic.Value
	r := chi.NewRouter()
	r.Post(apiclient.LoginPath, func(w http.ResponseWriter, req *http.Request) {
		tenant.Store(req.Header.Get(gateway.HeaderTenant))
		loginHandler(t)(w, req)
	})
	f := newFixture(t, r)
	ctx := context.Background()

	require.NoError(t, f.sessions.SetTenant(ctx, "acme"))
	_, err := f.client.Login(ctx, "m@x.com", "secret")
	require.NoError(t, err)
	require.Equal(t, "acme", tenant.Load())
}

func TestRequest_OmitsTenantHeader(t *testing.T) {
	t.Parallel()

	var tenant atomic.Value
	r := chi.NewRouter()
	r.Get("/api/teams", func(w http.ResponseWriter, req *http.Request) {
		tenant.Store(req.Header.Get(gateway.HeaderTenant))
		writeJSON(w, http.StatusOK, []map[string]any{})
	})
	f := newFixture(t, r)
	ctx := context.Background()

	require.NoError(t, f.sessions.SetTenant(ctx, "acme"))
	_, err := f.client.ListTeams(ctx)
	require.NoError(t, err)
	require.Empty(t, tenant.Load())
}

func TestLogin_BackendUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client, err := apiclient.New(session.New(kvstore.NewMemory(), nil), apiclient.WithBaseURL(base))
	require.NoError(t, err)

	_, err = client.Login(context.Background(), "m@x.com", "secret")
	require.True(t, apierr.IsNetwork(err))
}

func TestRequest_Success(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/api/jobs", func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "open", req.URL.Query().Get("status"))
		require.Equal(t, "20", req.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "title": "Go engineer", "status": "open", "created_at": "2025-03-01T09:30:00"},
		})
	})
	f := newFixture(t, r)

	jobs, err := f.client.ListJobs(context.Background(), apiclient.JobFilter{
		Status: "open",
		Page:   apiclient.Page{Limit: 20},
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, apiclient.ID("1"), jobs[0].ID)
	require.Equal(t, 2025, jobs[0].CreatedAt.Year())
}

func TestRequest_NonJSONSuccessYieldsZero(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/api/text", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/api/text-json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(`{"a":1}`))
	})
	r.Delete("/api/jobs/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	f := newFixture(t, r)
	ctx := context.Background()

	got, err := apiclient.Request[map[string]any](ctx, f.client, http.MethodGet, "/api/text")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = apiclient.Request[map[string]any](ctx, f.client, http.MethodGet, "/api/text-json")
	require.NoError(t, err)
	require.EqualValues(t, 1, got["a"])

	require.NoError(t, f.client.DeleteJob(ctx, "j1"))
}

func TestRequest_ErrorTranslation(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/api/kpis", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Database error"})
	})
	r.Get("/api/teams", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("<html><body>maintenance window</body></html>"))
	})
	f := newFixture(t, r)
	ctx := context.Background()

	_, err := f.client.GetKPIs(ctx, apiclient.KPIFilter{})
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Erreur de base de données", apiErr.Message)
	require.Equal(t, http.StatusInternalServerError, apiErr.Status)

	_, err = f.client.ListTeams(ctx)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Service temporairement indisponible", apiErr.Message)
	require.Equal(t, "maintenance window", apiErr.Raw)
}

func TestRequest_UnauthorizedClearsSession(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/api/jobs", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
	})
	f := newFixture(t, r)
	ctx := context.Background()
	require.NoError(t, f.sessions.Set(ctx, "stale", session.Profile{Role: "recruiter"}))

	_, err := f.client.ListJobs(ctx, apiclient.JobFilter{})
	require.Equal(t, http.StatusUnauthorized, apierr.StatusOf(err))
	require.False(t, f.sessions.IsAuthenticated(ctx))
	require.EqualValues(t, 1, f.expired.Load())
}

func TestDegradedReads(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/api/client/job-requests", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
	})
	r.Get("/api/jobs/pending", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": []map[string]string{{"msg": "bad"}}})
	})
	r.Get("/api/shortlists/pending", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]string{"detail": "Not enough permissions"})
	})
	r.Get("/api/notifications", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
	})
	f := newFixture(t, r)
	ctx := context.Background()

	reqs, err := f.client.GetClientJobRequests(ctx)
	require.NoError(t, err)
	require.NotNil(t, reqs)
	require.Empty(t, reqs)

	jobs, err := f.client.ListPendingJobs(ctx)
	require.NoError(t, err)
	require.Empty(t, jobs)

	notes, err := f.client.ListNotifications(ctx, true)
	require.NoError(t, err)
	require.Empty(t, notes)

	_, err = f.client.ListPendingShortlists(ctx)
	require.Error(t, err)
	require.Equal(t, "Vous n'avez pas les droits nécessaires pour cette action", err.Error())
}

func TestRequest_NetworkFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client, err := apiclient.New(session.New(kvstore.NewMemory(), nil), apiclient.WithBaseURL(base))
	require.NoError(t, err)

	_, err = client.ListUsers(context.Background(), apiclient.Page{})
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 0, apiErr.Status)
	require.Equal(t, apierr.CodeNetwork, apiErr.Code)
	require.True(t, gateway.IsUnreachable(err))
}

func TestRequest_MissingID(t *testing.T) {
	t.Parallel()

	f := newFixture(t, chi.NewRouter())

	_, err := f.client.GetJob(context.Background(), "")
	require.ErrorIs(t, err, apiclient.ErrMissingID)
	require.Equal(t, apierr.CodeUnknown, apierr.CodeOf(err))
}

func TestUploadCandidateCV(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Post("/api/candidates/{id}/cv", func(w http.ResponseWriter, req *http.Request) {
		require.True(t, strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data; boundary="))
		file, header, err := req.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		require.Equal(t, "cv.pdf", header.Filename)
		require.Equal(t, "%PDF", string(data))

		writeJSON(w, http.StatusOK, map[string]any{"id": chi.URLParam(req, "id"), "cv_url": "/files/cv.pdf"})
	})
	f := newFixture(t, r)

	cand, err := f.client.UploadCandidateCV(context.Background(), "c1", "cv.pdf", "application/pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	require.Equal(t, apiclient.ID("c1"), cand.ID)
	require.Equal(t, "/files/cv.pdf", cand.CVURL)
}

func TestValidateJob(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Post("/api/jobs/{id}/validate", func(w http.ResponseWriter, req *http.Request) {
		var d apiclient.Decision
		require.NoError(t, json.NewDecoder(req.Body).Decode(&d))
		require.True(t, d.Approved)
		writeJSON(w, http.StatusOK, map[string]any{"id": chi.URLParam(req, "id"), "title": "Go", "status": "open"})
	})
	f := newFixture(t, r)

	job, err := f.client.ValidateJob(context.Background(), "j42", apiclient.Decision{Approved: true})
	require.NoError(t, err)
	require.Equal(t, "open", job.Status)
}

func TestLoadCalendar(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	r := chi.NewRouter()
	r.Get("/api/jobs", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusOK, []map[string]any{{"id": "j1", "title": "Go"}})
	})
	r.Get("/api/applications", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusOK, []map[string]any{{"id": "a1", "candidate_id": "c1", "job_id": "j1", "status": "new"}})
	})
	r.Get("/api/interviews", func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		require.NotEmpty(t, req.URL.Query().Get("from"))
		writeJSON(w, http.StatusOK, []map[string]any{{"id": "i1", "application_id": "a1", "scheduled_at": "2025-03-02T10:00:00Z"}})
	})
	f := newFixture(t, r)

	cal, err := f.client.LoadCalendar(context.Background(), apiclient.CalendarFilter{
		From: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.EqualValues(t, 3, calls.Load())
	require.Len(t, cal.Jobs, 1)
	require.Len(t, cal.Applications, 1)
	require.Len(t, cal.Interviews, 1)
}

func TestLoadCalendar_FailureCancels(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/api/jobs", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})
	r.Get("/api/applications", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Database error"})
	})
	r.Get("/api/interviews", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})
	f := newFixture(t, r)

	_, err := f.client.LoadCalendar(context.Background(), apiclient.CalendarFilter{})
	require.Error(t, err)
}

func TestRegisterCompanyAndLogout(t *testing.T) {
	t.Parallel()

	var loggedOut atomic.Bool
	r := chi.NewRouter()
	r.Post(apiclient.RegisterCompanyPath, func(w http.ResponseWriter, req *http.Request) {
		var in apiclient.CompanyRegistration
		require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
		writeJSON(w, http.StatusCreated, map[string]any{
			"access_token": "adm-token",
			"token_type":   "bearer",
			"user_id":      7,
			"user_role":    "administrateur",
			"user_email":   in.AdminEmail,
			"user_name":    in.AdminName,
			"subdomain":    strings.ToLower(in.Subdomain),
		})
	})
	r.Post(apiclient.LogoutPath, func(w http.ResponseWriter, _ *http.Request) {
		loggedOut.Store(true)
		w.WriteHeader(http.StatusNoContent)
	})
	f := newFixture(t, r)
	ctx := context.Background()

	res, err := f.client.RegisterCompany(ctx, apiclient.CompanyRegistration{
		CompanyName:   "Acme",
		Subdomain:     "Acme",
		AdminName:     "Ada",
		AdminEmail:    "ada@acme.io",
		AdminPassword: "pw",
	})
	require.NoError(t, err)
	require.Equal(t, "/admin", res.RedirectTo)
	require.Equal(t, "7", res.Profile.UserID)
	require.Equal(t, "acme", f.sessions.Tenant(ctx))
	require.Equal(t, "adm-token", f.sessions.Token(ctx))

	require.NoError(t, f.client.Logout(ctx))
	require.True(t, loggedOut.Load())
	require.False(t, f.sessions.IsAuthenticated(ctx))
	require.Equal(t, "acme", f.sessions.Tenant(ctx))
}

func TestRegisterCompanyDerivesSubdomain(t *testing.T) {
	t.Parallel()

	var sent string
	r := chi.NewRouter()
	r.Post(apiclient.RegisterCompanyPath, func(w http.ResponseWriter, req *http.Request) {
		var in apiclient.CompanyRegistration
		require.NoError(t, json.NewDecoder(req.Body).Decode(&in))
		sent = in.Subdomain
		writeJSON(w, http.StatusCreated, map[string]any{})
	})
	f := newFixture(t, r)
	ctx := context.Background()

	res, err := f.client.RegisterCompany(ctx, apiclient.CompanyRegistration{CompanyName: "Société Générale RH"})
	require.NoError(t, err)
	require.Equal(t, "societe-generale-rh", sent)
	require.Equal(t, "societe-generale-rh", f.sessions.Tenant(ctx))
	require.False(t, f.sessions.IsAuthenticated(ctx))
	require.Equal(t, session.RoleAdmin, res.Role)
}

func TestTenantSlug(t *testing.T) {
	t.Parallel()

	require.Equal(t, "acme-corp", apiclient.TenantSlug("ACME Corp."))
	require.Regexp(t, `^www-[a-z0-9]{6}$`, apiclient.TenantSlug("WWW"))
}

func TestID(t *testing.T) {
	t.Parallel()

	var v struct {
		A apiclient.ID `json:"a"`
		B apiclient.ID `json:"b"`
		C apiclient.ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":12,"b":"x-1","c":null}`), &v))
	require.Equal(t, apiclient.ID("12"), v.A)
	require.Equal(t, apiclient.ID("x-1"), v.B)
	require.Empty(t, v.C)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"a":12,"b":"x-1","c":""}`, string(out))

	require.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}
