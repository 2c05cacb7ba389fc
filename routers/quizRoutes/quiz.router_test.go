package quizRoutes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Consistent-coder/QuizMaster/config"
	"github.com/Consistent-coder/QuizMaster/database"
	authRoutes "github.com/Consistent-coder/QuizMaster/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "router-test-secret",
		SaltRound: 4,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app, db)
	SetupQuizRoutes(app, db, nil)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	parsed := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func signupToken(t *testing.T, app *fiber.App, email, role string) string {
	t.Helper()

	status, body := doJSON(t, app, "POST", "/auth/signup", "", map[string]interface{}{
		"name":     "Router Tester",
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	require.Equal(t, fiber.StatusCreated, status)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func quizPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":  "HTTP Basics",
		"topic": "networking",
		"tags":  []string{"http", "web"},
		"questions": []map[string]interface{}{
			{
				"text":   "Which status code means Not Found?",
				"review": "404 is the canonical not-found status.",
				"options": []map[string]interface{}{
					{"text": "404", "isCorrect": true},
					{"text": "200", "isCorrect": false},
					{"text": "500", "isCorrect": false},
				},
			},
			{
				"text":   "Which verb is idempotent by definition?",
				"review": "PUT replaces the full resource representation.",
				"options": []map[string]interface{}{
					{"text": "PUT", "isCorrect": true},
					{"text": "POST", "isCorrect": false},
				},
			},
		},
	}
}

func TestSignupAndSignin(t *testing.T) {
	app := setupApp(t)

	token := signupToken(t, app, "user@example.com", "")
	require.NotEmpty(t, token)

	// Duplicate email rejected
	status, body := doJSON(t, app, "POST", "/auth/signup", "", map[string]interface{}{
		"name":     "Router Tester",
		"email":    "user@example.com",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])

	// Signin with the right password
	status, body = doJSON(t, app, "POST", "/auth/signin", "", map[string]interface{}{
		"email":    "user@example.com",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	// ...and with the wrong one
	status, _ = doJSON(t, app, "POST", "/auth/signin", "", map[string]interface{}{
		"email":    "user@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestCreateQuizAuthorization(t *testing.T) {
	app := setupApp(t)
	userToken := signupToken(t, app, "user@example.com", "")
	adminToken := signupToken(t, app, "admin@example.com", "ADMIN")

	// No token
	status, _ := doJSON(t, app, "POST", "/quiz/create", "", quizPayload())
	assert.Equal(t, fiber.StatusUnauthorized, status)

	// USER role
	status, _ = doJSON(t, app, "POST", "/quiz/create", userToken, quizPayload())
	assert.Equal(t, fiber.StatusForbidden, status)

	// ADMIN role
	status, body := doJSON(t, app, "POST", "/quiz/create", adminToken, quizPayload())
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["success"])
}

func TestCreateQuizValidation(t *testing.T) {
	app := setupApp(t)
	adminToken := signupToken(t, app, "admin@example.com", "ADMIN")

	payload := quizPayload()
	questions := payload["questions"].([]map[string]interface{})
	questions[0]["options"] = []map[string]interface{}{
		{"text": "lonely option", "isCorrect": true},
	}

	status, _ := doJSON(t, app, "POST", "/quiz/create", adminToken, payload)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCatalogSearchByTag(t *testing.T) {
	app := setupApp(t)
	adminToken := signupToken(t, app, "admin@example.com", "ADMIN")

	status, _ := doJSON(t, app, "POST", "/quiz/create", adminToken, quizPayload())
	require.Equal(t, fiber.StatusCreated, status)

	// Catalog is public; term matches the tag only
	status, body := doJSON(t, app, "GET", "/quiz/all?searchTerm=WEB", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	quizzes := body["quizzes"].([]interface{})
	require.Len(t, quizzes, 1)

	status, body = doJSON(t, app, "GET", "/quiz/all?searchTerm=nomatch", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body["quizzes"])
}

func TestAttemptLifecycleOverHTTP(t *testing.T) {
	app := setupApp(t)
	adminToken := signupToken(t, app, "admin@example.com", "ADMIN")
	userToken := signupToken(t, app, "user@example.com", "")

	status, created := doJSON(t, app, "POST", "/quiz/create", adminToken, quizPayload())
	require.Equal(t, fiber.StatusCreated, status)
	quizID := int(created["quiz"].(map[string]interface{})["ID"].(float64))

	// Start exposes questions without correctness
	status, started := doJSON(t, app, "GET", fmt.Sprintf("/quiz/%d/start", quizID), userToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	quiz := started["quiz"].(map[string]interface{})
	questions := quiz["questions"].([]interface{})
	require.Len(t, questions, 2)
	firstOption := questions[0].(map[string]interface{})["options"].([]interface{})[0].(map[string]interface{})
	_, leaked := firstOption["isCorrect"]
	assert.False(t, leaked)

	answers := make([]map[string]interface{}, 0, 2)
	for _, q := range questions {
		qm := q.(map[string]interface{})
		opts := qm["options"].([]interface{})
		answers = append(answers, map[string]interface{}{
			"questionId":       int(qm["id"].(float64)),
			"selectedOptionId": int(opts[0].(map[string]interface{})["id"].(float64)),
		})
	}

	// Checkpoint, then resume shows the saved selections
	status, _ = doJSON(t, app, "POST", fmt.Sprintf("/quiz/%d/save-progress", quizID), userToken,
		map[string]interface{}{"answers": answers})
	require.Equal(t, fiber.StatusOK, status)

	status, resumed := doJSON(t, app, "GET", fmt.Sprintf("/quiz/%d/start", quizID), userToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, resumed["selectedAnswers"].(map[string]interface{}), 2)

	// Submit closes the attempt
	status, submitted := doJSON(t, app, "POST", fmt.Sprintf("/quiz/%d/submit", quizID), userToken,
		map[string]interface{}{"answers": answers})
	require.Equal(t, fiber.StatusOK, status)
	assert.NotNil(t, submitted["score"])

	// Further submits and restarts are rejected
	status, _ = doJSON(t, app, "POST", fmt.Sprintf("/quiz/%d/submit", quizID), userToken,
		map[string]interface{}{"answers": answers})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = doJSON(t, app, "GET", fmt.Sprintf("/quiz/%d/start", quizID), userToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	// Review remains available
	status, review := doJSON(t, app, "GET", fmt.Sprintf("/quiz/%d/attempt", quizID), userToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, review["evaluatedAnswers"].([]interface{}), 2)

	// Dashboard reflects the completed attempt
	status, stats := doJSON(t, app, "GET", "/quiz/u/stats", userToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	statsMap := stats["stats"].(map[string]interface{})
	assert.EqualValues(t, 1, statsMap["completed"])
}

func TestSubmitWithoutAnswersIsRejected(t *testing.T) {
	app := setupApp(t)
	adminToken := signupToken(t, app, "admin@example.com", "ADMIN")
	userToken := signupToken(t, app, "user@example.com", "")

	status, created := doJSON(t, app, "POST", "/quiz/create", adminToken, quizPayload())
	require.Equal(t, fiber.StatusCreated, status)
	quizID := int(created["quiz"].(map[string]interface{})["ID"].(float64))

	status, _ = doJSON(t, app, "GET", fmt.Sprintf("/quiz/%d/start", quizID), userToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, app, "POST", fmt.Sprintf("/quiz/%d/submit", quizID), userToken,
		map[string]interface{}{"answers": []interface{}{}})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestErrorEnvelopeShape(t *testing.T) {
	app := setupApp(t)
	userToken := signupToken(t, app, "user@example.com", "")

	status, body := doJSON(t, app, "GET", "/quiz/999/start", userToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
	assert.EqualValues(t, 404, body["status"])
	assert.NotEmpty(t, body["msg"])
}
