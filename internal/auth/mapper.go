// File: internal/auth/mapper.go
package auth

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

// MapRegistration folds legacy aliases into canonical fields. It is pure and total:
// canonical values always win, legacy fields are cleared, and mapping twice changes nothing.
// Values are forwarded as the caller wrote them, apart from surrounding whitespace.
func MapRegistration(req RegistrationRequest) RegistrationRequest {
	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if full := strings.TrimSpace(req.FullName); first == "" && full != "" {
		var rest string
		first, rest = SplitFullName(full)
		if last == "" {
			last = rest
		}
	}

	return RegistrationRequest{
		FirstName:       first,
		LastName:        last,
		Email:           strings.TrimSpace(req.Email),
		Phone:           strings.TrimSpace(firstNonEmpty(req.Phone, req.MobileNumber)),
		Dob:             strings.TrimSpace(firstNonEmpty(req.Dob, req.DateOfBirth)),
		Password:        req.Password,
		PasswordConfirm: firstNonEmpty(req.PasswordConfirm, req.ConfirmPassword),
	}
}

// SplitFullName splits on the first run of whitespace. The remainder may be empty.
func SplitFullName(full string) (first, rest string) {
	full = strings.TrimSpace(full)
	idx := strings.IndexFunc(full, unicode.IsSpace)
	if idx < 0 {
		return full, ""
	}
	return full[:idx], strings.TrimSpace(full[idx:])
}

// ValidPhone reports whether raw parses as a possible phone number. Numbers without a leading
// "+" are read in defaultRegion.
func ValidPhone(raw, defaultRegion string) bool {
	num, err := phonenumbers.Parse(strings.TrimSpace(raw), strings.ToUpper(defaultRegion))
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(num)
}

func (r RegistrationRequest) upstream() upstreamRegistration {
	return upstreamRegistration{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Name:            strings.TrimSpace(r.FirstName + " " + r.LastName),
		Email:           r.Email,
		Phone:           r.Phone,
		Dob:             r.Dob,
		Password:        r.Password,
		PasswordConfirm: r.PasswordConfirm,
	}
}

// extractionRule is one candidate location inside an upstream body, tried in order.
type extractionRule []string

var (
	userRules  = []extractionRule{{"data", "user"}, {"user"}, {}}
	tokenRules = []extractionRule{{"data", "token"}, {"token"}, {"accessToken"}}
)

// ExtractUser returns the user object from data.user, user or the bare body, first match wins.
// A missing name is derived from the email local part. Returns nil when nothing matches.
func ExtractUser(body json.RawMessage) map[string]interface{} {
	root, ok := decodeObject(body)
	if !ok {
		return nil
	}
	for _, rule := range userRules {
		obj, ok := lookup(root, rule).(map[string]interface{})
		if !ok || len(obj) == 0 {
			continue
		}
		user := make(map[string]interface{}, len(obj)+1)
		for k, v := range obj {
			user[k] = v
		}
		if len(rule) == 0 {
			// the bare body also carries the envelope and the credentials
			for _, k := range []string{"token", "accessToken", "status", "message", "data"} {
				delete(user, k)
			}
		}
		if name, _ := user["name"].(string); strings.TrimSpace(name) == "" {
			if email, _ := user["email"].(string); email != "" {
				user["name"] = DisplayNameFromEmail(email)
			}
		}
		return user
	}
	return nil
}

// ExtractToken returns the first non-empty string found at data.token, token or accessToken.
func ExtractToken(body json.RawMessage) string {
	root, ok := decodeObject(body)
	if !ok {
		return ""
	}
	for _, rule := range tokenRules {
		if tok, ok := lookup(root, rule).(string); ok && tok != "" {
			return tok
		}
	}
	return ""
}

// DisplayNameFromEmail returns the part of an email address before '@'.
func DisplayNameFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at >= 0 {
		return email[:at]
	}
	return email
}

func decodeObject(body json.RawMessage) (map[string]interface{}, bool) {
	if len(body) == 0 {
		return nil, false
	}
	var root map[string]interface{}
	if err := json.Unmarshal(body, &root); err != nil || root == nil {
		return nil, false
	}
	return root, true
}

func lookup(root map[string]interface{}, path extractionRule) interface{} {
	var cur interface{} = root
	for _, key := range path {
		obj, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = obj[key]
	}
	return cur
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
