package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pageza/pantrychef/backend/internal/api"
	"github.com/pageza/pantrychef/backend/internal/llm"
	"github.com/pageza/pantrychef/backend/internal/service"
)

// fakeOpenAI answers chat completions and a minimal assistants flow,
// recording every prompt it receives
type fakeOpenAI struct {
	mu      sync.Mutex
	prompts []string
	reply   string
	fail    bool
}

func (f *fakeOpenAI) record(prompt string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
}

func (f *fakeOpenAI) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

func (f *fakeOpenAI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.fail {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
		return
	}

	var body map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&body)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/chat/completions":
		messages := body["messages"].([]interface{})
		f.record(messages[len(messages)-1].(map[string]interface{})["content"].(string))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []interface{}{map[string]interface{}{"message": map[string]string{"role": "assistant", "content": f.reply}}},
		})
	case r.URL.Path == "/threads" && r.Method == http.MethodPost:
		_, _ = w.Write([]byte(`{"id":"thread_1"}`))
	case strings.HasSuffix(r.URL.Path, "/messages") && r.Method == http.MethodPost:
		f.record(body["content"].(string))
		_, _ = w.Write([]byte(`{"id":"msg_1"}`))
	case strings.HasSuffix(r.URL.Path, "/runs") || strings.Contains(r.URL.Path, "/runs/"):
		_, _ = w.Write([]byte(`{"id":"run_1","status":"completed"}`))
	case strings.HasSuffix(r.URL.Path, "/messages"):
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []interface{}{map[string]interface{}{
				"role":    "assistant",
				"content": []interface{}{map[string]interface{}{"type": "text", "text": map[string]string{"value": f.reply}}},
			}},
		})
	default:
		http.NotFound(w, r)
	}
}

func setupGenerationRoutes(t *testing.T, fake *fakeOpenAI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	upstream := httptest.NewServer(fake)
	t.Cleanup(upstream.Close)

	logger := zaptest.NewLogger(t)
	client := llm.ClientConfig{APIKey: "test-key", BaseURL: upstream.URL, Logger: logger}
	assistant := llm.NewAssistantClient(llm.AssistantConfig{
		ClientConfig: client,
		AssistantID:  "asst_test",
		PollInterval: 10 * time.Millisecond,
		Timeout:      5 * time.Second,
	})
	chat := llm.NewChatClient(client, "gpt-4o-mini")

	h := api.NewGenerationHandler(service.NewGenerationService(assistant, assistant, chat, logger))
	r := gin.New()
	r.POST("/api/v1/recipes/generate", h.GenerateRecipe)
	r.POST("/api/v1/new-recipes/generate", h.GenerateNamedRecipe)
	r.POST("/api/v1/recipes/substitute", h.Substitute)
	r.POST("/api/v1/recipes/updateServings", h.UpdateServings)
	return r
}

func post(t *testing.T, r http.Handler, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w.Code, out
}

func TestRecipeGenerationEndpoint(t *testing.T) {
	fake := &fakeOpenAI{reply: "Chicken Fried Rice\n\nIngredients:\n- chicken"}
	r := setupGenerationRoutes(t, fake)

	status, resp := post(t, r, "/api/v1/recipes/generate", `{"ingredients":["chicken","rice"],"allergies":["peanuts"],"servings":2}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, fake.reply, resp["recipe"])

	prompt := fake.last()
	assert.Contains(t, prompt, "chicken, rice")
	assert.Contains(t, prompt, "peanuts")
	assert.Contains(t, prompt, "2")

	status, resp = post(t, r, "/api/v1/new-recipes/generate", `{"recipeName":"Paella"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, fake.reply, resp["recipe"])
	assert.Contains(t, fake.last(), "Paella")
}

func TestSubstituteAndServingsUseChatCompletions(t *testing.T) {
	fake := &fakeOpenAI{reply: "1 cup applesauce"}
	r := setupGenerationRoutes(t, fake)

	status, resp := post(t, r, "/api/v1/recipes/substitute", `{"ingredient":"egg","alreadyUsed":["flax egg"]}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1 cup applesauce", resp["substitute"])
	assert.Contains(t, fake.last(), "flax egg")

	status, _ = post(t, r, "/api/v1/recipes/updateServings", `{"recipe":"Soup for two","servings":"6"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, fake.last(), "Soup for two")
}

func TestGenerationUpstreamFailure(t *testing.T) {
	r := setupGenerationRoutes(t, &fakeOpenAI{fail: true})

	status, resp := post(t, r, "/api/v1/recipes/generate", `{"ingredients":["chicken"]}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "An error occurred while generating the recipe.", resp["error"])

	status, resp = post(t, r, "/api/v1/recipes/substitute", `{"ingredient":"egg"}`)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to generate a substitute.", resp["error"])
}
