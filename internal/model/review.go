package model

// Bullet is a single manager-supplied talking point about an employee.
// Rating is optional; when present it must be a member of the
// qualifiers enum.
type Bullet struct {
	Text   string `json:"text"`
	Rating string `json:"rating,omitempty"`
}

// ManagerInput is the raw submission a review is drafted from
type ManagerInput struct {
	ManagerID      string   `json:"manager_id"`
	Employee       string   `json:"employee"`
	ManagerBullets []Bullet `json:"manager_bullets"`
}

// RatedBulletCount returns how many bullets carry a non-empty rating.
func (m ManagerInput) RatedBulletCount() int {
	count := 0
	for _, b := range m.ManagerBullets {
		if b.Rating != "" {
			count++
		}
	}
	return count
}

// Draft is one narrative revision of the performance review.
// The text may contain PII placeholder tokens (e.g., {{employee_name}})
// that must survive every rewrite verbatim.
type Draft struct {
	Text string `json:"draft"`
}

// ReviewStructure is the free-form section template the draft follows.
// Loaded from JSON; the pipeline only serializes it into prompts.
type ReviewStructure map[string]any

// Qualifiers is the qualifiers document describing allowed ratings.
// Expected shape: {"schema": {"properties": {"performance_rating": {"enum": [...]}}}}
type Qualifiers map[string]any

// AllowedRatings digs the performance-rating enum out of the qualifiers
// document. Returns nil when the document does not carry one.
func (q Qualifiers) AllowedRatings() []string {
	schema, ok := q["schema"].(map[string]any)
	if !ok {
		return nil
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		return nil
	}
	rating, ok := props["performance_rating"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := rating["enum"].([]any)
	if !ok {
		return nil
	}
	ratings := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			ratings = append(ratings, s)
		}
	}
	return ratings
}
