// File: internal/upstream/normalize.go
package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"nutrisnap_gateway/internal/common"

	"golang.org/x/net/html"
)

const htmlMarker = "<!doctype html>"

// Normalize maps any upstream outcome onto the caller contract.
// successMessage is used when a successful upstream body carries no message of its own.
func Normalize(res Result, successMessage string) common.NormalizedResponse {
	if res.Err != nil {
		return common.NormalizedResponse{
			Success: false,
			Message: fmt.Sprintf("API request failed: %s", res.Err.Error()),
			Status:  http.StatusInternalServerError,
		}
	}

	status := res.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	text := bytes.TrimSpace(res.Body)

	if len(text) == 0 {
		if status < http.StatusBadRequest {
			return common.NormalizedResponse{Success: true, Message: successMessage, Status: status}
		}
		return common.NormalizedResponse{
			Success: false,
			Message: fmt.Sprintf("Request failed with status %d", status),
			Status:  status,
		}
	}

	var parsed interface{}
	if err := json.Unmarshal(text, &parsed); err != nil {
		return normalizeText(string(res.Body))
	}

	message := messageOf(parsed)
	if status >= http.StatusBadRequest {
		if message == "" {
			message = fmt.Sprintf("Request failed with status %d", status)
		}
		return common.NormalizedResponse{
			Success: false,
			Message: message,
			Data:    json.RawMessage(text),
			Status:  status,
		}
	}

	if message == "" {
		message = successMessage
	}
	return common.NormalizedResponse{
		Success: true,
		Message: message,
		Data:    json.RawMessage(text),
		Status:  status,
	}
}

// normalizeText handles bodies that are not JSON: HTML error pages and anything else.
func normalizeText(text string) common.NormalizedResponse {
	if strings.Contains(strings.ToLower(text), htmlMarker) {
		if extracted, ok := ExtractPreText(text); ok {
			return common.NormalizedResponse{
				Success: false,
				Message: fmt.Sprintf("API Error: %s. Please check the API endpoint.", extracted),
				Status:  http.StatusBadRequest,
			}
		}
	}
	return common.NormalizedResponse{
		Success: false,
		Message: fmt.Sprintf("API returned non-JSON response: %s", text),
		Status:  http.StatusInternalServerError,
	}
}

// ExtractPreText returns the text content of the first complete <pre> element.
func ExtractPreText(doc string) (string, bool) {
	z := html.NewTokenizer(strings.NewReader(doc))
	inPre := false
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			// EOF or broken markup before </pre>
			return "", false
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "pre" {
				inPre = true
			}
		case html.TextToken:
			if inPre {
				b.Write(z.Text())
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); inPre && string(name) == "pre" {
				return strings.TrimSpace(b.String()), true
			}
		}
	}
}

func messageOf(parsed interface{}) string {
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return ""
	}
	if msg, ok := obj["message"].(string); ok {
		return strings.TrimSpace(msg)
	}
	return ""
}
