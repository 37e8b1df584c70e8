package localstore

import (
	"math"
	"strconv"
	"strings"
	"time"

	"kw8/gym-app/internal/domain"
)

// Collection keys.
const (
	KeyWorkoutPlans   = "kw8_workoutPlans"
	KeyWorkoutFolders = "kw8_workoutFolders"
	KeyUsers          = "kw8_users"
	KeyRemoteEnabled  = "kw8_remote_enabled"
	KeyAutoLogin      = "kw8_auto_login"

	cookiePreferencesPrefix = "kw8_cookie_preferences_"
)

var (
	workoutPlans   = collection[domain.WorkoutPlan]{key: KeyWorkoutPlans, upgrades: []upgradeFunc{upgradePlansV1}}
	workoutFolders = collection[domain.WorkoutFolder]{key: KeyWorkoutFolders, upgrades: []upgradeFunc{upgradeFoldersV1}}
	users          = collection[domain.User]{key: KeyUsers, upgrades: []upgradeFunc{upgradeUsersV1, upgradeUsersV2}}
)

// v0 -> v1: fill the fields older clients did not write.
func upgradePlansV1(docs []map[string]any, now time.Time) {
	for i, d := range docs {
		setDefault(d, "category", "strength")
		setDefault(d, "status", string(domain.PlanPublished))
		setMissing(d, "order", i)
		setDefault(d, "activeVariantId", domain.OriginalVariantID)
		stamp(d, now)

		// Legacy difficulty was a label.
		if _, ok := d["difficulty"].(float64); !ok {
			d["difficulty"] = difficultyLevel(d["difficulty"])
		}
		for _, k := range []string{"tags", "targetMuscles", "associatedAthletes", "exercises"} {
			ensureArray(d, k)
		}
		media, _ := d["mediaFiles"].(map[string]any)
		if media == nil {
			media = map[string]any{}
		}
		for _, k := range []string{"images", "videos", "audio"} {
			ensureArray(media, k)
		}
		d["mediaFiles"] = media

		if w, ok := d["durationWeeks"].(float64); !ok || w <= 0 {
			days, _ := d["duration"].(float64)
			d["durationWeeks"] = domain.DurationWeeksFor(int(math.Ceil(days)))
		}
		stringify(d, "id", "folderId")
		if exercises, ok := d["exercises"].([]any); ok {
			for _, e := range exercises {
				if ex, ok := e.(map[string]any); ok {
					normalizeExercise(ex)
				}
			}
		}
	}
}

// v0 -> v1
func upgradeFoldersV1(docs []map[string]any, now time.Time) {
	for i, d := range docs {
		setMissing(d, "order", i)
		setDefault(d, "icon", domain.DefaultFolderIcon)
		setDefault(d, "color", domain.DefaultFolderColor)
		stamp(d, now)
		stringify(d, "id", "parentId")
	}
}

// v0 -> v1: canonical roles and statuses.
func upgradeUsersV1(docs []map[string]any, now time.Time) {
	for _, d := range docs {
		name, _ := d["name"].(string)
		d["name"] = strings.TrimSpace(name)
		role, _ := d["role"].(string)
		d["role"] = string(domain.NormalizeRole(role))
		setDefault(d, "membershipStatus", string(domain.MembershipPending))
		setDefault(d, "paymentStatus", string(domain.PaymentUnpaid))
		stamp(d, now)
		ensureArray(d, "workoutPlans")
		stringify(d, "id")
	}
}

// v1 -> v2: "planId|variant:variantId" strings become structured references.
// Entries that cannot be parsed are dropped.
func upgradeUsersV2(docs []map[string]any, _ time.Time) {
	for _, d := range docs {
		raw, _ := d["workoutPlans"].([]any)
		refs := make([]any, 0, len(raw))
		for _, item := range raw {
			switch v := item.(type) {
			case string:
				ref, err := domain.ParsePlanRef(v)
				if err != nil {
					continue
				}
				obj := map[string]any{"planId": ref.PlanID}
				if ref.HasVariant() {
					obj["variantId"] = ref.VariantID
				}
				refs = append(refs, obj)
			case map[string]any:
				if id, _ := v["planId"].(string); strings.TrimSpace(id) != "" {
					refs = append(refs, v)
				}
			}
		}
		d["workoutPlans"] = refs
	}
}

// setMissing fills key only when it is absent or null, so an explicit zero
// survives.
func setMissing(d map[string]any, key string, value any) {
	if d[key] == nil {
		d[key] = value
	}
}

// setDefault replaces missing, null, empty-string and zero values.
func setDefault(d map[string]any, key string, value any) {
	switch v := d[key].(type) {
	case nil:
	case string:
		if v != "" {
			return
		}
	case float64:
		if v != 0 {
			return
		}
	default:
		return
	}
	d[key] = value
}

func ensureArray(d map[string]any, key string) {
	if _, ok := d[key].([]any); !ok {
		d[key] = []any{}
	}
}

// stamp makes createdAt/updatedAt parseable RFC 3339 timestamps.
func stamp(d map[string]any, now time.Time) {
	for _, key := range []string{"createdAt", "updatedAt"} {
		d[key] = normalizeTimestamp(d[key], now)
	}
}

func normalizeTimestamp(v any, now time.Time) string {
	s, _ := v.(string)
	if s != "" {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t.Format(time.RFC3339Nano)
		}
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			return t.UTC().Format(time.RFC3339Nano)
		}
	}
	if ms, ok := v.(float64); ok && ms > 0 {
		return time.UnixMilli(int64(ms)).UTC().Format(time.RFC3339Nano)
	}
	return now.Format(time.RFC3339Nano)
}

func difficultyLevel(v any) int {
	s, _ := v.(string)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "intermediate", "intermedio":
		return 3
	case "advanced", "avanzado":
		return 5
	default:
		return 1
	}
}

// stringify turns numeric ids into strings and drops null references.
func stringify(d map[string]any, keys ...string) {
	for _, key := range keys {
		switch v := d[key].(type) {
		case nil:
			delete(d, key)
		case float64:
			d[key] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
}

// normalizeExercise coerces numeric fields that were saved as form strings.
func normalizeExercise(ex map[string]any) {
	stringify(ex, "id")
	for _, key := range []string{"sets", "reps", "rest", "duration"} {
		if s, ok := ex[key].(string); ok {
			n, _ := strconv.Atoi(strings.TrimSpace(s))
			ex[key] = n
		}
	}
	if s, ok := ex["weight"].(string); ok {
		w, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
		ex["weight"] = w
	}
}
