package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"pesanet/kopa_lending/configs"
	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/logger"
	"pesanet/kopa_lending/internal/pkg/models"
)

// errorBody is the backend's error envelope. Unknown fields are ignored on
// decode, like everywhere else.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// callAPI performs one request against the lending backend and maps non-2xx
// responses into the error taxonomy.
func callAPI(ct context.Context, path string, method string, headers map[string]string, payload io.Reader) ([]byte, error) {

	ctx, cancel := context.WithTimeout(ct, time.Duration(configs.TIMEOUT_IN_SECONDS)*time.Second)
	defer cancel()

	url := configs.LENDING_API_BASE_URL + path

	req, err := http.NewRequest(method, url, payload)
	if err != nil {
		return nil, err
	}

	req.Header.Add("x-api-key", configs.LENDING_API_KEY)
	req.Header.Add("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Add(key, value)
	}

	req = req.WithContext(ctx)
	client := &http.Client{}

	resp, err := client.Do(req)
	if err != nil {
		logger.Error(ct, "lending API call failed url=%s err=%v", url, err)
		return nil, consts.ErrorServer
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, consts.ErrorServer
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	return nil, mapStatusError(resp.StatusCode, body)
}

// postJSON marshals the request body and calls the path with POST.
func postJSON(ctx context.Context, path string, headers map[string]string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return callAPI(ctx, path, http.MethodPost, headers, bytes.NewReader(payload))
}

func getJSON(ctx context.Context, path string, headers map[string]string) ([]byte, error) {
	return callAPI(ctx, path, http.MethodGet, headers, nil)
}

func mapStatusError(status int, body []byte) error {
	var envelope errorBody
	_ = json.Unmarshal(body, &envelope)

	// Backend error codes take priority over the blunt HTTP status.
	switch envelope.Code {
	case "OTP_EXPIRED":
		return consts.ErrorOtpExpired
	case "OTP_INVALID":
		return consts.ErrorOtpInvalid
	case "MAX_ATTEMPTS_EXCEEDED":
		return consts.ErrorMaxAttemptsExceeded
	case "TOKEN_EXPIRED":
		return consts.ErrorTokenExpired
	case "INVALID_CREDENTIALS":
		return consts.ErrorInvalidCredentials
	}

	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if envelope.Message != "" {
			return &models.CustomError{Code: consts.ErrorValidation.Code, Message: envelope.Message}
		}
		return consts.ErrorValidation
	case http.StatusUnauthorized:
		return consts.ErrorInvalidCredentials
	case http.StatusForbidden:
		return consts.ErrorTokenExpired
	case http.StatusGone:
		return consts.ErrorOtpExpired
	case http.StatusTooManyRequests:
		return consts.ErrorMaxAttemptsExceeded
	default:
		if envelope.Message != "" {
			return &models.CustomError{Code: consts.ErrorServer.Code, Message: envelope.Message}
		}
		return consts.ErrorServer
	}
}
