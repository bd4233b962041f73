package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prolens/profile-analyzer/internal/models"
	"prolens/profile-analyzer/internal/services"
)

type stubRequester struct {
	result *services.AnalysisResult
	err    error
}

func (s *stubRequester) RequestAnalysis(_ context.Context, _ *services.ProfilePayload) (*services.AnalysisResult, error) {
	return s.result, s.err
}

func (s *stubRequester) CompleteWithFallback(_ context.Context, _, _ string) (*services.AnalysisResult, error) {
	return s.result, s.err
}

type memProfileRepo struct {
	profiles map[string]*models.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: map[string]*models.Profile{}}
}

func (m *memProfileRepo) Create(p *models.Profile) error {
	m.profiles[p.UserID] = p
	return nil
}

func (m *memProfileRepo) FindByUserID(userID string) (*models.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile not found")
	}
	return p, nil
}

func (m *memProfileRepo) FindAll() ([]models.Profile, error) { return nil, nil }

func (m *memProfileRepo) Update(p *models.Profile) error {
	m.profiles[p.UserID] = p
	return nil
}

func (m *memProfileRepo) DeleteByUserID(userID string) error {
	delete(m.profiles, userID)
	return nil
}

type memAnalysisRepo struct {
	created []*models.Analysis
}

func (m *memAnalysisRepo) Create(a *models.Analysis) error {
	m.created = append(m.created, a)
	return nil
}

func (m *memAnalysisRepo) FindLatestByProfileID(_ uuid.UUID) (*models.Analysis, error) {
	return nil, fmt.Errorf("analysis not found")
}

func (m *memAnalysisRepo) DeleteByProfileID(_ uuid.UUID) error { return nil }

type noopIndexer struct{}

func (noopIndexer) IndexProfile(_ context.Context, _, _ string) error { return nil }
func (noopIndexer) SimilarProfiles(_ context.Context, _, _ string, _ int) ([]services.SimilarProfile, error) {
	return nil, nil
}
func (noopIndexer) RemoveProfile(_ context.Context, _ string) error { return nil }

func newAnalyzeApp(t *testing.T, requester services.AnalysisRequester, analysisRepo *memAnalysisRepo) (*fiber.App, string) {
	t.Helper()

	uploadDir := t.TempDir()
	handler := NewAnalyzeHandler(
		newMemProfileRepo(),
		analysisRepo,
		services.NewStorageService(uploadDir),
		services.NewTextExtractor("eng"),
		services.NewSectionSegmenter(),
		requester,
		noopIndexer{},
		1<<20,
	)

	app := fiber.New()
	app.Post("/api/v1/profiles/analyze-profile", handler.HandleAnalyzeProfile)
	return app, uploadDir
}

// minimalPDF builds a one-page PDF whose text layer holds the given line.
func minimalPDF(t *testing.T, line string) []byte {
	t.Helper()

	contentStream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", line)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(contentStream), contentStream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, object := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, object)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)

	return buf.Bytes()
}

func fileRequest(t *testing.T, fields map[string]string, filename string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/v1/profiles/analyze-profile", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func storedFiles(t *testing.T, dir string) []string {
	t.Helper()

	var files []string
	require.NoError(t, filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	}))
	return files
}

func formRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/v1/profiles/analyze-profile", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))
	return parsed
}

func TestHandleAnalyzeProfile_MissingUserID(t *testing.T) {
	app, _ := newAnalyzeApp(t, &stubRequester{}, &memAnalysisRepo{})

	resp, err := app.Test(formRequest(t, map[string]string{"about": "hi"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleAnalyzeProfile_NoFileNoFields(t *testing.T) {
	app, _ := newAnalyzeApp(t, &stubRequester{}, &memAnalysisRepo{})

	resp, err := app.Test(formRequest(t, map[string]string{"userId": "u1"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleAnalyzeProfile_BothProvidersDown(t *testing.T) {
	analysisRepo := &memAnalysisRepo{}
	requester := &stubRequester{err: &services.AnalysisUnavailableError{
		PrimaryErr:  errors.New("claude unreachable"),
		FallbackErr: errors.New("openai unreachable"),
	}}
	app, _ := newAnalyzeApp(t, requester, analysisRepo)

	resp, err := app.Test(formRequest(t, map[string]string{
		"userId": "u1",
		"about":  "I am a developer.",
	}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Both AI providers are unavailable", body["message"])

	// No partial report persisted
	assert.Empty(t, analysisRepo.created)
}

func TestHandleAnalyzeProfile_UnparseableAnalysis(t *testing.T) {
	analysisRepo := &memAnalysisRepo{}
	requester := &stubRequester{result: &services.AnalysisResult{
		Text:     "free-form rambling with no markers",
		Provider: services.ProviderClaude,
	}}
	app, _ := newAnalyzeApp(t, requester, analysisRepo)

	resp, err := app.Test(formRequest(t, map[string]string{
		"userId": "u1",
		"about":  "I am a developer.",
	}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "unable to load analysis", body["message"])
	assert.Nil(t, body["aiAnalysis"])
	assert.Equal(t, "free-form rambling with no markers", body["rawAnalysis"])
}

func TestHandleAnalyzeProfile_UploadRemovedAfterAnalysis(t *testing.T) {
	requester := &stubRequester{result: &services.AnalysisResult{
		Text:     "**Inferred Career Goal:**\nBackend Engineer\n",
		Provider: services.ProviderClaude,
	}}
	app, uploadDir := newAnalyzeApp(t, requester, &memAnalysisRepo{})

	resp, err := app.Test(fileRequest(t,
		map[string]string{"userId": "u1"},
		"profile.pdf",
		minimalPDF(t, "Jane Smith, Backend Engineer"),
	))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Uploads are read once and discarded, never kept on disk.
	assert.Empty(t, storedFiles(t, uploadDir))
}

func TestHandleAnalyzeProfile_UploadRemovedAfterFailedExtraction(t *testing.T) {
	app, uploadDir := newAnalyzeApp(t, &stubRequester{}, &memAnalysisRepo{})

	resp, err := app.Test(fileRequest(t,
		map[string]string{"userId": "u1"},
		"broken.pdf",
		[]byte("this is not a pdf"),
	))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	assert.Empty(t, storedFiles(t, uploadDir))
}

func TestHandleAnalyzeProfile_StructuredReport(t *testing.T) {
	analysisRepo := &memAnalysisRepo{}
	requester := &stubRequester{result: &services.AnalysisResult{
		Text: "**Inferred Career Goal:**\nSoftware Engineer\n\n" +
			"**About Section:**\n- Suggestion: Add metrics.\n- Reasoning: Numbers persuade.\n",
		Provider: services.ProviderOpenAI,
	}}
	app, _ := newAnalyzeApp(t, requester, analysisRepo)

	resp, err := app.Test(formRequest(t, map[string]string{
		"userId":   "u1",
		"name":     "Jane Doe",
		"headline": "Staff Engineer",
		"about":    "I am a developer.",
	}))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "openai", body["provider"])

	analysis, ok := body["aiAnalysis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Software Engineer", analysis["careerGoal"])

	require.Len(t, analysisRepo.created, 1)
	assert.Equal(t, "Software Engineer", analysisRepo.created[0].CareerGoal)
}
