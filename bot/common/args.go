package common

import (
	"strconv"
	"strings"
)

// ParseUserMention extracts the id from <@id>, <@!id> or a bare snowflake
func ParseUserMention(arg string) (string, bool) {
	id := arg
	if strings.HasPrefix(arg, "<@") && strings.HasSuffix(arg, ">") {
		id = strings.TrimPrefix(strings.TrimSuffix(strings.TrimPrefix(arg, "<@"), ">"), "!")
	}
	return id, isSnowflake(id)
}

// ParseChannelMention extracts the id from <#id> or a bare snowflake
func ParseChannelMention(arg string) (string, bool) {
	id := arg
	if strings.HasPrefix(arg, "<#") && strings.HasSuffix(arg, ">") {
		id = strings.TrimSuffix(strings.TrimPrefix(arg, "<#"), ">")
	}
	return id, isSnowflake(id)
}

// ParsePositiveAmount parses a strictly positive integer. Commas are accepted
// as thousand separators.
func ParsePositiveAmount(arg string) (int64, bool) {
	n, err := strconv.ParseInt(strings.ReplaceAll(arg, ",", ""), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ParseAmountOrAll parses an amount, where "all" or "max" selects available
func ParseAmountOrAll(arg string, available int64) (int64, bool) {
	switch strings.ToLower(arg) {
	case "all", "max":
		if available <= 0 {
			return 0, false
		}
		return available, true
	}
	return ParsePositiveAmount(arg)
}

// ParsePage parses a 1-based page number; missing or invalid input yields 1
func ParsePage(args []string, index int) int {
	if index >= len(args) {
		return 1
	}
	page, err := strconv.Atoi(args[index])
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func isSnowflake(id string) bool {
	if len(id) < 2 || len(id) > 20 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
