package sqldb

import (
	"strconv"
	"strings"
)

var PlaceholderPrefixForDBType = map[string]byte{
	"mysql":  '?',
	"pgsql":  '$',
	"sqlite": '?', // NOTE: sqlite supports all of them
}

// ReplaceStaticPlaceholders rewrites `?` into prefix+ordinal (`$1`, `$2`, ...).
// `??` is kept as-is. Single-quoted literals, double-quoted identifiers,
// `--` line comments and `/* */` block comments are copied untouched.
func ReplaceStaticPlaceholders(sql string, prefix byte) string {
	if prefix == '?' || prefix == 0 {
		return sql
	}
	var builder strings.Builder
	builder.Grow(len(sql) + 8)
	cnt := 1
	i := 0
	for i < len(sql) {
		c := sql[i]
		switch {
		case c == '\'' || c == '"':
			// quoted region up to the matching quote; doubled quotes reopen it
			end := strings.IndexByte(sql[i+1:], c)
			if end < 0 {
				builder.WriteString(sql[i:])
				return builder.String()
			}
			builder.WriteString(sql[i : i+end+2])
			i += end + 2
			continue
		case c == '-' && i+1 < len(sql) && sql[i+1] == '-':
			end := strings.IndexByte(sql[i:], '\n')
			if end < 0 {
				builder.WriteString(sql[i:])
				return builder.String()
			}
			builder.WriteString(sql[i : i+end+1])
			i += end + 1
			continue
		case c == '/' && i+1 < len(sql) && sql[i+1] == '*':
			end := strings.Index(sql[i+2:], "*/")
			if end < 0 {
				builder.WriteString(sql[i:])
				return builder.String()
			}
			builder.WriteString(sql[i : i+end+4])
			i += end + 4
			continue
		case c != '?':
			builder.WriteByte(c)
		case i+1 < len(sql) && sql[i+1] == '?':
			builder.WriteString("??")
			i += 2
			continue
		default:
			builder.WriteByte(prefix)
			builder.WriteString(strconv.Itoa(cnt))
			cnt++
		}
		i++
	}
	return builder.String()
}
