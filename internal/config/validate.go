package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything a UI should
// show before the config is accepted.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Relevance.Keywords = trimList(out.Relevance.Keywords)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if strings.TrimSpace(out.ProfilePath) == "" {
		res.addErr("profile_path is required")
	}

	if out.Polling.ScrapeSeconds <= 0 {
		res.addErr("polling.scrape_seconds must be > 0")
	} else if out.Polling.ScrapeSeconds < 60 {
		res.addWarn("polling.scrape_seconds is very low (%d) and may cause rate limits.", out.Polling.ScrapeSeconds)
	}
	if out.Polling.CleanupHours <= 0 {
		res.addErr("polling.cleanup_hours must be > 0")
	}

	if out.Source.RemoteOK.Enabled {
		if strings.TrimSpace(out.Source.RemoteOK.BaseURL) == "" {
			res.addErr("source.remoteok.base_url is required when source.remoteok.enabled=true")
		}
		if out.Source.RemoteOK.Limit <= 0 {
			res.addErr("source.remoteok.limit must be > 0 when source.remoteok.enabled=true")
		}
	}

	if len(out.Relevance.Keywords) == 0 {
		res.addWarn("relevance.keywords is empty; every fetched posting will be scored and stored.")
	}

	return out, res
}
