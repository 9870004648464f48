package authz

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// MessageInvalidPermission is the message key for the generic denial
// text. The response never names the missing permissions.
const MessageInvalidPermission = "invalid_permission"

const defaultInvalidPermission = "You do not have permission to perform this action."

// Localizer resolves a message key to user-facing text for a request.
type Localizer interface {
	Localize(key string, c echo.Context) string
}

// MapLocalizer is a table-backed Localizer keyed by language tag then
// message key. The language is taken from the first Accept-Language
// entry; unknown languages fall back to "en", then to a built-in default.
type MapLocalizer map[string]map[string]string

func (m MapLocalizer) Localize(key string, c echo.Context) string {
	lang := "en"
	if accept := c.Request().Header.Get("Accept-Language"); accept != "" {
		lang = strings.ToLower(strings.TrimSpace(strings.SplitN(accept, ",", 2)[0]))
		if i := strings.IndexAny(lang, "-;"); i > 0 {
			lang = lang[:i]
		}
	}

	if msgs, ok := m[lang]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msgs, ok := m["en"]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if key == MessageInvalidPermission {
		return defaultInvalidPermission
	}
	return key
}
