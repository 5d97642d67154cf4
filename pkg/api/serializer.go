package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mailru/easyjson"
)

// JSONSerializer uses generated easyjson codecs and falls back to echo's
// encoding/json serializer for other types.
type JSONSerializer struct {
	fallback echo.DefaultJSONSerializer
}

func (s JSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	m, ok := i.(easyjson.Marshaler)
	if !ok || indent != "" {
		return s.fallback.Serialize(c, i, indent)
	}
	_, err := easyjson.MarshalToWriter(m, c.Response())
	return err
}

func (s JSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	u, ok := i.(easyjson.Unmarshaler)
	if !ok {
		return s.fallback.Deserialize(c, i)
	}
	if err := easyjson.UnmarshalFromReader(c.Request().Body, u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err)).SetInternal(err)
	}
	return nil
}
