package dataset

// Characters that Parquet rejects in schema field names. Space-like and
// separator characters become underscores; bracketing characters are
// dropped outright.
var invalidChars = map[rune]string{
	' ':  "_",
	',':  "_",
	';':  "_",
	'\n': "_",
	'\t': "_",
	'=':  "_",
	'-':  "_",
	'{':  "",
	'}':  "",
	'(':  "",
	')':  "",
}

// SanitizeColumnName rewrites a column name so it contains only characters
// legal in Parquet schema metadata. Each forbidden character is substituted
// independently: runs of forbidden characters produce runs of underscores,
// never a collapsed single one. All other characters pass through unchanged.
//
// The function is total (any string in, including empty) and idempotent:
// its output contains no forbidden characters, so re-sanitizing is a no-op.
func SanitizeColumnName(name string) string {
	result := make([]rune, 0, len(name))
	for _, r := range name {
		if repl, ok := invalidChars[r]; ok {
			if repl != "" {
				result = append(result, '_')
			}
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
