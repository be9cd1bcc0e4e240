package database

import (
	"fmt"
	"strings"
)

// ConstructDatabaseURL joins a server URL and a database name. The name is
// inserted before any query string, and sslmode=disable is appended unless
// the URL already chooses a mode. An empty name returns baseURL unchanged.
func ConstructDatabaseURL(baseURL, databaseName string) string {
	if databaseName == "" {
		return baseURL
	}

	server, query, _ := strings.Cut(strings.TrimRight(baseURL, "/"), "?")
	server = strings.TrimRight(server, "/")

	databaseURL := fmt.Sprintf("%s/%s", server, databaseName)
	if query != "" {
		databaseURL += "?" + query
	}

	if strings.Contains(query, "sslmode=") {
		return databaseURL
	}
	if query == "" {
		return databaseURL + "?sslmode=disable"
	}
	return databaseURL + "&sslmode=disable"
}
