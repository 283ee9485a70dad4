package config

import "maps"

// MergeLocal merges a template manifest into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	// Shallow copy: everything except files and hooks stays user-controlled.
	merged := *global

	merged.Files = mergeFiles(global.Files, local.Files)

	// Merge hooks by name: local overrides/adds, enabled=false removes
	merged.Hooks = mergeHooks(global.Hooks, local.Hooks)

	return &merged
}

// mergeFiles overlays local file rules onto global ones by path.
// Order is preserved: global rules first, new local paths appended.
// Returns a new slice (never mutates global).
func mergeFiles(global, local []FileRule) []FileRule {
	result := make([]FileRule, len(global))
	copy(result, global)

	index := make(map[string]int, len(result))
	for i, f := range result {
		index[f.Path] = i
	}

	for _, f := range local {
		if i, ok := index[f.Path]; ok {
			result[i] = f
			continue
		}
		index[f.Path] = len(result)
		result = append(result, f)
	}

	return result
}

// mergeHooks merges local hooks into global hooks.
// Local hooks with the same name override global hooks.
// Local hooks with enabled=false remove the global hook.
func mergeHooks(global, local HooksConfig) HooksConfig {
	merged := HooksConfig{
		Hooks: make(map[string]Hook, len(global.Hooks)),
	}

	maps.Copy(merged.Hooks, global.Hooks)

	for name, hook := range local.Hooks {
		if !hook.IsEnabled() {
			delete(merged.Hooks, name)
			continue
		}
		merged.Hooks[name] = hook
	}

	return merged
}
