package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// expand replaces {wallet:Name}, {category:Name} and {share:Name} placeholders
// with the IDs captured while building fixtures.
func (tc *TestContext) expand(s string) string {
	for name, id := range tc.walletIDs {
		s = strings.ReplaceAll(s, "{wallet:"+name+"}", id)
	}
	for name, id := range tc.categoryIDs {
		s = strings.ReplaceAll(s, "{category:"+name+"}", id)
	}
	for name, id := range tc.shareIDs {
		s = strings.ReplaceAll(s, "{share:"+name+"}", id)
	}
	return s
}

func (tc *TestContext) doRequest(method, endpoint string, body io.Reader, contentType string) error {
	req, err := http.NewRequest(method, tc.server.URL+tc.expand(endpoint), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Remember the last created resource ID for follow-up steps.
	var parsed struct {
		ID string `json:"id"`
	}
	if json.Unmarshal(tc.responseBody, &parsed) == nil && parsed.ID != "" {
		tc.lastID = parsed.ID
	}
	return nil
}

// doRequestAs performs a request with another user's token without touching
// the active identity.
func (tc *TestContext) doRequestAs(username, method, endpoint string, body io.Reader) (map[string]any, int, error) {
	token, ok := tc.tokens[username]
	if !ok {
		return nil, 0, fmt.Errorf("no token for user %q", username)
	}

	req, err := http.NewRequest(method, tc.server.URL+tc.expand(endpoint), body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	var parsed map[string]any
	_ = json.Unmarshal(raw, &parsed)
	return parsed, resp.StatusCode, nil
}

// Fixture steps

func aRegisteredUser(ctx context.Context, username, password string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	req, err := http.NewRequest(http.MethodPost, tc.server.URL+"/api/v1/auth/register", strings.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("registration of %q failed with status %d: %s", username, resp.StatusCode, raw)
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return err
	}
	tc.tokens[username] = parsed.AccessToken
	return nil
}

func iAmLoggedInAs(ctx context.Context, username string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	token, ok := tc.tokens[username]
	if !ok {
		return fmt.Errorf("user %q was never registered", username)
	}
	tc.accessToken = token
	return nil
}

func userHasWallet(ctx context.Context, username, name, walletType string, opening int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	body := fmt.Sprintf(`{"name":%q,"type":%q,"opening_balance":%d}`, name, walletType, opening)
	parsed, status, err := tc.doRequestAs(username, http.MethodPost, "/api/v1/wallets", strings.NewReader(body))
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("wallet creation failed with status %d: %v", status, parsed)
	}

	id, _ := parsed["id"].(string)
	if id == "" {
		return fmt.Errorf("wallet response has no id: %v", parsed)
	}
	tc.walletIDs[name] = id
	return nil
}

func userHasCategory(ctx context.Context, username, name, categoryType string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	body := fmt.Sprintf(`{"name":%q,"type":%q}`, name, categoryType)
	parsed, status, err := tc.doRequestAs(username, http.MethodPost, "/api/v1/categories", strings.NewReader(body))
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("category creation failed with status %d: %v", status, parsed)
	}

	id, _ := parsed["id"].(string)
	if id == "" {
		return fmt.Errorf("category response has no id: %v", parsed)
	}
	tc.categoryIDs[name] = id
	return nil
}

func userSharesWallet(ctx context.Context, owner, walletName, recipient, permission string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	walletID, ok := tc.walletIDs[walletName]
	if !ok {
		return fmt.Errorf("wallet %q was never created", walletName)
	}

	body := fmt.Sprintf(`{"username":%q,"permission":%q}`, recipient, permission)
	parsed, status, err := tc.doRequestAs(owner, http.MethodPost, "/api/v1/wallets/"+walletID+"/shares", strings.NewReader(body))
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("sharing failed with status %d: %v", status, parsed)
	}

	if id, _ := parsed["id"].(string); id != "" {
		tc.shareIDs[recipient] = id
	}
	return nil
}

// Request steps

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.doRequest(method, endpoint, nil, "")
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.doRequest(method, endpoint, strings.NewReader(tc.expand(body.Content)), "application/json")
}

func iDeleteTheLastTransaction(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.lastID == "" {
		return fmt.Errorf("no transaction was created in this scenario")
	}
	return tc.doRequest(http.MethodDelete, "/api/v1/transactions/"+tc.lastID, nil, "")
}

func iDeleteTheLastCreatedResourceAt(ctx context.Context, base string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.lastID == "" {
		return fmt.Errorf("no resource was created in this scenario")
	}
	return tc.doRequest(http.MethodDelete, strings.TrimSuffix(base, "/")+"/"+tc.lastID, nil, "")
}

func iUploadACSVTo(ctx context.Context, endpoint string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "transaksi.csv")
	if err != nil {
		return err
	}
	if _, err := part.Write([]byte(body.Content)); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	return tc.doRequest(http.MethodPost, endpoint, &buf, writer.FormDataContentType())
}

// Response steps

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	expected = tc.expand(expected)
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain %q. Body: %s", expected, tc.responseBody)
	}
	return nil
}

func theResponseShouldNotContain(ctx context.Context, unexpected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	unexpected = tc.expand(unexpected)
	if strings.Contains(string(tc.responseBody), unexpected) {
		return fmt.Errorf("response contains %q. Body: %s", unexpected, tc.responseBody)
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	value, ok := data[field]
	if !ok {
		return fmt.Errorf("field %q not found in response. Body: %s", field, tc.responseBody)
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field %q expected %q, got %q", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}
	if _, ok := data[field]; !ok {
		return fmt.Errorf("field %q not found in response. Body: %s", field, tc.responseBody)
	}
	return nil
}

func walletShouldHaveBalance(ctx context.Context, walletName, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	if err := tc.doRequest(http.MethodGet, "/api/v1/wallets", nil, ""); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("wallet listing failed with status %d: %s", tc.response.StatusCode, tc.responseBody)
	}

	var listing struct {
		Owned []struct {
			Name    string `json:"name"`
			Balance string `json:"balance"`
		} `json:"owned"`
		Shared []struct {
			Wallet struct {
				Name    string `json:"name"`
				Balance string `json:"balance"`
			} `json:"wallet"`
		} `json:"shared"`
	}
	if err := json.Unmarshal(tc.responseBody, &listing); err != nil {
		return fmt.Errorf("failed to parse wallet listing: %w", err)
	}

	for _, w := range listing.Owned {
		if w.Name == walletName {
			if w.Balance != expected {
				return fmt.Errorf("wallet %q has balance %s, expected %s", walletName, w.Balance, expected)
			}
			return nil
		}
	}
	for _, s := range listing.Shared {
		if s.Wallet.Name == walletName {
			if s.Wallet.Balance != expected {
				return fmt.Errorf("wallet %q has balance %s, expected %s", walletName, s.Wallet.Balance, expected)
			}
			return nil
		}
	}
	return fmt.Errorf("wallet %q not found in listing. Body: %s", walletName, tc.responseBody)
}
