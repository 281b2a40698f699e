package media

import "socialhub/internal/pkg/mediafs"

// Kind names an upload target. It labels metrics and picks the policy.
type Kind string

const (
	KindMedia  Kind = "media"
	KindStory  Kind = "story"
	KindAvatar Kind = "avatar"
)

var (
	mediaTypes  = []string{"image/jpeg", "image/png", "video/mp4", "video/quicktime"}
	avatarTypes = []string{"image/jpeg", "image/png"}
)

type Policies struct {
	Media  mediafs.Policy
	Story  mediafs.Policy
	Avatar mediafs.Policy
}

type Limits struct {
	MediaMaxFiles  int
	StoryMaxFiles  int
	UploadMaxBytes int64
	AvatarMaxBytes int64
}

func DefaultLimits() Limits {
	return Limits{
		MediaMaxFiles:  100,
		StoryMaxFiles:  5,
		UploadMaxBytes: 100_000_000,
		AvatarMaxBytes: 30_000_000,
	}
}

func NewPolicies(l Limits) Policies {
	return Policies{
		Media:  mediafs.NewPolicy(l.MediaMaxFiles, l.UploadMaxBytes, mediaTypes...),
		Story:  mediafs.NewPolicy(l.StoryMaxFiles, l.UploadMaxBytes, mediaTypes...),
		Avatar: mediafs.NewPolicy(1, l.AvatarMaxBytes, avatarTypes...),
	}
}

func (p Policies) For(kind Kind) mediafs.Policy {
	switch kind {
	case KindStory:
		return p.Story
	case KindAvatar:
		return p.Avatar
	default:
		return p.Media
	}
}
