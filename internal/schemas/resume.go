package schemas

// ResumeSchema returns the canonical resume schema. This is the single
// definition the extraction prompt example, the structured-output call
// schema, and the strict-JSON validation schema are all derived from.
func ResumeSchema() *Node {
	return Object(
		Prop("personal", Object(
			Prop("name", String()),
			Prop("title", String()),
			Prop("summary", String()),
			Prop("photo", String()),
			Prop("primaryPhoto", String()),
			Prop("secondaryPhoto", String()),
		)),
		Prop("contact", Object(
			Prop("email", String()),
			Prop("phone", String()),
			Prop("location", String()),
		)),
		Prop("links", Object(
			Prop("github", String()),
			Prop("linkedin", String()),
			Prop("twitter", String()),
			Prop("portfolio", String()),
		)),
		Prop("experience", Array(Object(
			Prop("company", String()),
			Prop("role", String()),
			Prop("startDate", String()),
			Prop("endDate", String()),
			Prop("description", String()),
		))),
		Prop("projects", Array(Object(
			Prop("name", String()),
			Prop("description", String()),
			Prop("tech", Array(String())),
			Prop("link", String()),
		))),
		Prop("skills", Array(String())),
		Prop("education", Array(String())),
	)
}

// JobMatchSchema returns the evaluation result schema. The nested
// improvedResume sub-schema is the resume schema itself, not a copy.
func JobMatchSchema() *Node {
	return Object(
		Prop("originalScore", Number(0, 100)),
		Prop("improvedScore", Number(0, 100)),
		Prop("improvedResume", ResumeSchema()),
		Prop("analysis", String()),
	)
}
