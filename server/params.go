package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/newsdeck/newsdeck/utils/log"
)

// params is the untyped request parameter bag of the action-dispatch
// endpoint: JSON object fields for POST, first query values for GET. The
// accessors coerce leniently so that a malformed number degrades to "not
// provided" instead of rejecting the request.
type params map[string]interface{}

func extractParams(c *gin.Context) params {
	p := params{}
	if c.Request.Method == http.MethodPost {
		if err := json.NewDecoder(c.Request.Body).Decode(&p); err != nil {
			Log.Warn("malformed request body: ", err)
		}
		return p
	}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			p[key] = values[0]
		}
	}
	return p
}

func (p params) has(key string) bool {
	_, ok := p[key]
	return ok
}

func (p params) str(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

func (p params) intVal(key string) (int, bool) {
	switch v := p[key].(type) {
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func (p params) uintVal(key string) (uint, bool) {
	n, ok := p.intVal(key)
	if !ok || n < 0 {
		return 0, false
	}
	return uint(n), true
}

func (p params) boolVal(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v == "1" || strings.EqualFold(v, "true")
	}
	return false
}
