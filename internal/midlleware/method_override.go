package middleware

import (
	"net/http"
	"strings"
)

// MethodOverride позволяет HTML-форме отправить PATCH/PUT/DELETE через POST с полем _method
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch m := strings.ToUpper(r.PostFormValue("_method")); m {
			case http.MethodPatch, http.MethodPut, http.MethodDelete:
				r.Method = m
			}
		}

		next.ServeHTTP(w, r)
	})
}
