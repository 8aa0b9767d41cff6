package keysweep

// Precedence helpers: CLI flag wins when set, then repo-local config, then
// global config.

func pickString(flag string, local, global *string) string {
	if flag != "" {
		return flag
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return ""
}

func pickInt(flag int, local, global *int) int {
	if flag != 0 {
		return flag
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return 0
}

func pickInt64(flag int64, local, global *int64) int64 {
	if flag != 0 {
		return flag
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return 0
}

func pickFloat(flag float64, local, global *float64) float64 {
	if flag != 0 {
		return flag
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return 0
}
