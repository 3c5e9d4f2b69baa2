//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-dashboard/backend/config"
	"github.com/finance-dashboard/backend/internal/infra/cache"
	"github.com/finance-dashboard/backend/internal/infra/dependency"
	"github.com/finance-dashboard/backend/internal/integration/persistence/model"
	"github.com/finance-dashboard/backend/test/integration/mock"
)

const resendEmailsPath = "/emails"

type testContext struct {
	headers       map[string]string
	client        *http.Client
	response      *response
	currentGoalID uuid.UUID
}

type response struct {
	status int
	body   any
}

var (
	serverInit sync.Once
	server     *httptest.Server
	injector   *dependency.Injector

	testDB      *mock.Db
	testTime    *mock.Time
	redisClient *redis.Client
	resendMock  *mock.ApiMock
)

// InitializeTestSuite sets up the shared backing stores before any scenario runs.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		testDB = mock.NewDb(map[string]any{
			"goals":       &model.GoalModel{},
			"email_queue": &model.EmailQueueModel{},
		})
		testTime = mock.NewTime()
		redisClient = mock.NewRedis()
		resendMock = mock.NewApiServer()
		resendMock.Start()
	})

	ctx.AfterSuite(func() {
		if server != nil {
			server.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Setup steps
	ctx.Given(`^a goal "([^"]*)" exists for owner "([^"]*)" with target "([^"]*)" and saved "([^"]*)"$`, test.aGoalExistsForOwner)
	ctx.Given(`^the email API responds to "([^"]*)" with status (\d+) and body:$`, test.theEmailAPIRespondsWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I send (\d+) "([^"]*)" requests to "([^"]*)" with body:$`, test.iSendRequestsToWithBody)
	ctx.When(`^the email worker processes the queue$`, test.theEmailWorkerProcessesTheQueue)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Third-party API assertion steps
	ctx.Then(`^the email API should have received (\d+) requests?$`, test.theEmailAPIShouldHaveReceivedRequests)
	ctx.Then(`^the email API request field "([^"]*)" should be "([^"]*)"$`, test.theEmailAPIRequestFieldShouldBe)
	ctx.Then(`^the email API request header "([^"]*)" should be "([^"]*)"$`, test.theEmailAPIRequestHeaderShouldBe)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.currentGoalID = uuid.Nil

	if testTime != nil {
		testTime.Reset()
	}
	if testDB != nil {
		if err := testDB.ClearDB(); err != nil {
			return err
		}
	}
	if redisClient != nil {
		if err := mock.ClearRedis(redisClient); err != nil {
			return err
		}
	}
	if resendMock != nil {
		resendMock.Reset()
		resendMock.SetResponse(http.MethodPost, resendEmailsPath, http.StatusOK, map[string]any{"id": "re_test_1"})
	}
	return nil
}

func (t *testContext) startServer() error {
	var startErr error
	serverInit.Do(func() {
		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Gemini.APIKey = ""
		cfg.Email.ResendAPIKey = "re_test"
		cfg.Email.ResendBaseURL = resendMock.GetUrl()
		cfg.Email.FromName = "Finance Dashboard"
		cfg.Email.FromEmail = "reports@example.com"
		cfg.Email.WorkerEnabled = true
		cfg.Analytics.RulesPath = ""
		cfg.Analytics.DefaultRegion = "AU"
		cfg.RateLimit.AssistantRequests = 3
		cfg.RateLimit.ReportRequests = 5
		cfg.RateLimit.Window = time.Hour

		injector, startErr = dependency.NewInjector(
			cfg,
			testDB.Database,
			cache.NewRedis(redisClient),
			dependency.WithClock(testTime.Now),
		)
		if startErr != nil {
			return
		}
		server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	})
	if startErr != nil {
		return startErr
	}
	if server == nil {
		return errors.New("test server failed to start")
	}
	return nil
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

func (t *testContext) theCurrentTimeIs(value string) error {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		parsed, err = time.Parse("2006-01-02", value)
		if err != nil {
			return fmt.Errorf("invalid time %q: %w", value, err)
		}
	}
	testTime.SetCurrentTime(parsed.UTC())
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) aGoalExistsForOwner(name, ownerID, target, saved string) error {
	targetAmount, err := decimal.NewFromString(target)
	if err != nil {
		return fmt.Errorf("invalid target %q: %w", target, err)
	}
	savedAmount, err := decimal.NewFromString(saved)
	if err != nil {
		return fmt.Errorf("invalid saved amount %q: %w", saved, err)
	}

	now := testTime.Now().UTC()
	goalModel := &model.GoalModel{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: savedAmount,
		Category:      "Savings",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := testDB.DbConn.Create(goalModel).Error; err != nil {
		return err
	}
	t.currentGoalID = goalModel.ID
	return nil
}

func (t *testContext) theEmailAPIRespondsWith(path string, status int, body *godog.DocString) error {
	var payload map[string]any
	if err := json.Unmarshal([]byte(body.Content), &payload); err != nil {
		return fmt.Errorf("invalid response body: %w", err)
	}
	resendMock.SetResponse(http.MethodPost, path, status, payload)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iSendRequestsToWithBody(count int, method, path string, body *godog.DocString) error {
	for i := 0; i < count; i++ {
		if err := t.iSendARequestToWithBody(method, path, body); err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) replacePlaceholders(content string) string {
	return strings.ReplaceAll(content, "{{goal_id}}", t.currentGoalID.String())
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, server.URL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Goal responses carry a target amount alongside their id.
	if idStr, ok := responseBody["id"].(string); ok {
		if _, isGoal := responseBody["target_amount"]; isGoal {
			if id, err := uuid.Parse(idStr); err == nil {
				t.currentGoalID = id
			}
		}
	}

	return nil
}

func (t *testContext) theEmailWorkerProcessesTheQueue() error {
	if injector == nil || injector.EmailWorker == nil {
		return errors.New("email worker is not configured")
	}
	injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	_, err := t.responseObject()
	return err
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	return expectField("response", body, field, expectedValue)
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	switch value := getFieldValue(body, field).(type) {
	case []any:
		if len(value) != quantity {
			return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, len(value))
		}
	case map[string]any:
		if len(value) != quantity {
			return fmt.Errorf("field '%s' expected %d keys, got %d", field, quantity, len(value))
		}
	case nil:
		if quantity != 0 {
			return fmt.Errorf("field '%s' not found in response: %v", field, body)
		}
	default:
		return fmt.Errorf("field '%s' is not a collection: %v", field, value)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return expectRows(table, nil, quantity)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}
	return expectRows(table, criteria, quantity)
}

// expectRows counts rows of table matching every column in criteria, soft-deleted rows included.
func expectRows(table string, criteria map[string]any, quantity int) error {
	row, ok := testDB.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	rows := reflect.New(reflect.SliceOf(reflect.TypeOf(row).Elem()))
	query := testDB.DbConn.Unscoped()
	for column, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}
	if err := query.Find(rows.Interface()).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if got := rows.Elem().Len(); got != quantity {
		return fmt.Errorf("expected %d rows in '%s' matching %v, got %d", quantity, table, criteria, got)
	}
	return nil
}

func (t *testContext) theEmailAPIShouldHaveReceivedRequests(quantity int) error {
	count := resendMock.RequestCount(http.MethodPost, resendEmailsPath)
	if count != quantity {
		return fmt.Errorf("expected %d email API requests, got %d", quantity, count)
	}
	return nil
}

func (t *testContext) theEmailAPIRequestFieldShouldBe(field, expectedValue string) error {
	body := resendMock.GetRequestBody(http.MethodPost, resendEmailsPath, 0)
	if body == nil {
		return errors.New("email API received no requests")
	}
	return expectField("email request", body, field, expectedValue)
}

func (t *testContext) theEmailAPIRequestHeaderShouldBe(header, expectedValue string) error {
	headers := resendMock.GetRequestHeaders(http.MethodPost, resendEmailsPath, 0)
	if headers == nil {
		return errors.New("email API received no requests")
	}
	if actual := headers.Get(header); actual != expectedValue {
		return fmt.Errorf("email request header '%s' expected '%s', got '%s'", header, expectedValue, actual)
	}
	return nil
}

func expectField(source string, body any, field, expected string) error {
	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in %s: %v", field, source, body)
	}
	if actual := fmt.Sprint(value); actual != expected {
		return fmt.Errorf("%s field '%s' expected '%s', got '%s'", source, field, expected, actual)
	}
	return nil
}

// getFieldValue walks a decoded JSON document along a dot path. Numeric
// segments index into arrays.
func getFieldValue(document any, path string) any {
	if _, isMap := document.(map[string]any); !isMap && document != nil {
		raw, err := json.Marshal(document)
		if err != nil || json.Unmarshal(raw, &document) != nil {
			return nil
		}
	}

	current := document
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			current = node[segment]
		case []any:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			current = node[i]
		default:
			return nil
		}
	}
	return current
}
