package workflow

// ViewContext pairs a viewer with the complaint fields that visibility
// rules depend on.
type ViewContext struct {
	Viewer    Actor
	OwnerID   string
	IsPublic  bool
	Anonymous bool
}

// CanView reports whether the viewer may read the complaint at all.
// Owners always see their own complaints, public complaints are open to
// everyone, and staff see everything.
func CanView(ctx ViewContext) bool {
	if ctx.IsPublic {
		return true
	}
	if ctx.Viewer.Authenticated && ctx.Viewer.ID == ctx.OwnerID {
		return true
	}
	return ctx.Viewer.Role.Staff()
}

// CanComment reports whether the viewer may add a comment.
func CanComment(ctx ViewContext) bool {
	if !ctx.Viewer.Authenticated {
		return false
	}
	return ctx.Viewer.ID == ctx.OwnerID || ctx.IsPublic || ctx.Viewer.Role.Staff()
}

// CanLike reports whether the viewer may toggle a like. Likes exist only
// on the public feed, so the public flag gates them for every role.
func CanLike(ctx ViewContext) bool {
	return ctx.Viewer.Authenticated && ctx.IsPublic
}

// RedactSubmitter reports whether the submitter's identity must be
// withheld from this viewer. Anonymous complaints stay anonymous to
// everyone except staff performing review duties.
func RedactSubmitter(ctx ViewContext) bool {
	if !ctx.Anonymous {
		return false
	}
	return !ctx.Viewer.Role.Staff()
}
