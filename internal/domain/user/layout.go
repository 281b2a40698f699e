package user

import "path/filepath"

const (
	storiesDir     = "stories"
	informationDir = "information"

	// AvatarFile is the reserved name of a user's profile picture.
	AvatarFile = "avatar.jpeg"
	// ChecklistFile holds the user's checklist as JSON.
	ChecklistFile = "list.json"
)

// Layout maps users to their directories under the data root:
//
//	{root}/{name}/                       permanent media
//	{root}/{name}/stories/               stories
//	{root}/{name}/information/avatar.jpeg
//	{root}/{name}/information/list.json
type Layout struct {
	Root string
}

func NewLayout(root string) Layout {
	return Layout{Root: filepath.Clean(root)}
}

func (l Layout) MediaDir(name string) string {
	return filepath.Join(l.Root, name)
}

func (l Layout) StoriesDir(name string) string {
	return filepath.Join(l.Root, name, storiesDir)
}

func (l Layout) InformationDir(name string) string {
	return filepath.Join(l.Root, name, informationDir)
}

func (l Layout) AvatarPath(name string) string {
	return filepath.Join(l.InformationDir(name), AvatarFile)
}

func (l Layout) ChecklistPath(name string) string {
	return filepath.Join(l.InformationDir(name), ChecklistFile)
}
