package vision

// Pass1Result is the parsed first-pass analysis of an image. Fields the
// model omitted or mistyped come back as zero values; callers treat the
// struct as untrusted until taxonomy matching and tag validation ran.
type Pass1Result struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Tags        []string            `json:"tags"`
	Categories  []string            `json:"categories"`
	Descriptors map[string][]string `json:"descriptors"`
	NSFW        bool                `json:"nsfw"`
}

// AllDescriptorNames flattens the typed descriptor map in a stable order.
func (r Pass1Result) AllDescriptorNames() []string {
	var out []string
	for _, t := range descriptorTypeOrder {
		out = append(out, r.Descriptors[t]...)
	}
	return out
}

// Pass2Result is the parsed second-pass SEO review. The final tag list is
// Keep plus Add; Remove is advisory and only used for logging. The
// description is replaced only when Quality is "needs_improvement" and
// ImprovedDescription passes sanitization.
type Pass2Result struct {
	Keep                []string `json:"keep"`
	Remove              []string `json:"remove"`
	Add                 []string `json:"add"`
	Reasoning           string   `json:"reasoning"`
	Quality             string   `json:"quality"`
	ImprovedDescription string   `json:"improved_description"`
	Reasons             []string `json:"reasons"`
}

// NeedsImprovement reports whether the model flagged the description.
func (r Pass2Result) NeedsImprovement() bool {
	return r.Quality == "needs_improvement"
}

// FinalTags returns the tag list the review proposes.
func (r Pass2Result) FinalTags() []string {
	out := make([]string, 0, len(r.Keep)+len(r.Add))
	out = append(out, r.Keep...)
	out = append(out, r.Add...)
	return out
}
