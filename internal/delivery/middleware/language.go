package middleware

import (
	"campusnav/internal/domain/constants"
	deliverycontext "campusnav/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

var supportedLanguages = language.NewMatcher([]language.Tag{
	language.English,
	language.Tamil,
})

// Language negotiates the reply language from the lang query parameter or
// Accept-Language, falling back to English.
func Language(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		deliverycontext.SetLanguage(c, negotiate(c.QueryParam("lang"), c.Request().Header.Get("Accept-Language")))

		return next(c)
	}
}

func negotiate(query, acceptLanguage string) string {
	// unmatched input resolves to index 0, the default
	_, index := language.MatchStrings(supportedLanguages, query, acceptLanguage)
	if index == 1 {
		return constants.LanguageTamil
	}

	return constants.LanguageEnglish
}
