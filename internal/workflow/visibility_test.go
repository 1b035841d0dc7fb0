package workflow

import "testing"

func viewer(id string, role Role, authed bool) Actor {
	return Actor{ID: id, Role: role, Name: "Viewer", Authenticated: authed}
}

func TestCanView(t *testing.T) {
	tests := []struct {
		name string
		ctx  ViewContext
		want bool
	}{
		{
			name: "public complaint visible to anyone",
			ctx:  ViewContext{Viewer: Actor{}, OwnerID: "owner", IsPublic: true},
			want: true,
		},
		{
			name: "owner sees private complaint",
			ctx:  ViewContext{Viewer: viewer("owner", RoleUser, true), OwnerID: "owner"},
			want: true,
		},
		{
			name: "stranger cannot see private complaint",
			ctx:  ViewContext{Viewer: viewer("other", RoleUser, true), OwnerID: "owner"},
			want: false,
		},
		{
			name: "unauthenticated cannot see private complaint",
			ctx:  ViewContext{Viewer: Actor{}, OwnerID: "owner"},
			want: false,
		},
		{
			name: "employee sees private complaint",
			ctx:  ViewContext{Viewer: viewer("emp", RoleEmployee, true), OwnerID: "owner"},
			want: true,
		},
		{
			name: "senior sees private complaint",
			ctx:  ViewContext{Viewer: viewer("sen", RoleSeniorEmployee, true), OwnerID: "owner"},
			want: true,
		},
		{
			name: "admin sees private complaint",
			ctx:  ViewContext{Viewer: viewer("adm", RoleAdmin, true), OwnerID: "owner"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanView(tt.ctx); got != tt.want {
				t.Errorf("CanView() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanComment(t *testing.T) {
	tests := []struct {
		name string
		ctx  ViewContext
		want bool
	}{
		{
			name: "unauthenticated never comments",
			ctx:  ViewContext{Viewer: Actor{}, OwnerID: "owner", IsPublic: true},
			want: false,
		},
		{
			name: "owner comments on own private complaint",
			ctx:  ViewContext{Viewer: viewer("owner", RoleUser, true), OwnerID: "owner"},
			want: true,
		},
		{
			name: "stranger comments on public complaint",
			ctx:  ViewContext{Viewer: viewer("other", RoleUser, true), OwnerID: "owner", IsPublic: true},
			want: true,
		},
		{
			name: "stranger cannot comment on private complaint",
			ctx:  ViewContext{Viewer: viewer("other", RoleUser, true), OwnerID: "owner"},
			want: false,
		},
		{
			name: "employee comments on private complaint",
			ctx:  ViewContext{Viewer: viewer("emp", RoleEmployee, true), OwnerID: "owner"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanComment(tt.ctx); got != tt.want {
				t.Errorf("CanComment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanLike(t *testing.T) {
	tests := []struct {
		name string
		ctx  ViewContext
		want bool
	}{
		{
			name: "authenticated likes public complaint",
			ctx:  ViewContext{Viewer: viewer("u", RoleUser, true), OwnerID: "owner", IsPublic: true},
			want: true,
		},
		{
			name: "unauthenticated cannot like",
			ctx:  ViewContext{Viewer: Actor{}, OwnerID: "owner", IsPublic: true},
			want: false,
		},
		{
			name: "private complaints take no likes, even from the owner",
			ctx:  ViewContext{Viewer: viewer("owner", RoleUser, true), OwnerID: "owner"},
			want: false,
		},
		{
			name: "private complaints take no likes from staff",
			ctx:  ViewContext{Viewer: viewer("adm", RoleAdmin, true), OwnerID: "owner"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanLike(tt.ctx); got != tt.want {
				t.Errorf("CanLike() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRedactSubmitter(t *testing.T) {
	tests := []struct {
		name string
		ctx  ViewContext
		want bool
	}{
		{
			name: "non-anonymous complaint is never redacted",
			ctx:  ViewContext{Viewer: Actor{}, Anonymous: false},
			want: false,
		},
		{
			name: "anonymous is redacted for the public",
			ctx:  ViewContext{Viewer: viewer("u", RoleUser, true), Anonymous: true},
			want: true,
		},
		{
			name: "anonymous is redacted for unauthenticated viewers",
			ctx:  ViewContext{Viewer: Actor{}, Anonymous: true},
			want: true,
		},
		{
			name: "staff see through anonymity for review duties",
			ctx:  ViewContext{Viewer: viewer("emp", RoleEmployee, true), Anonymous: true},
			want: false,
		},
		{
			name: "admin sees through anonymity",
			ctx:  ViewContext{Viewer: viewer("adm", RoleAdmin, true), Anonymous: true},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RedactSubmitter(tt.ctx); got != tt.want {
				t.Errorf("RedactSubmitter() = %v, want %v", got, tt.want)
			}
		})
	}
}
