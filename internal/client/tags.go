package client

// TagType names a cached entity type.
type TagType string

const (
	NoteTag TagType = "Note"
	UserTag TagType = "User"
)

// ListID is the tag id that stands for "any list of this type".
const ListID = "LIST"

// Tag labels a cached query result. Invalidating a tag re-fetches every query
// that provided it.
type Tag struct {
	Type TagType
	ID   string
}

// MutationKind identifies a write endpoint.
type MutationKind string

const (
	AddNewNote MutationKind = "addNewNote"
	UpdateNote MutationKind = "updateNote"
	DeleteNote MutationKind = "deleteNote"
	AddNewUser MutationKind = "addNewUser"
	UpdateUser MutationKind = "updateUser"
	DeleteUser MutationKind = "deleteUser"
)

// invalidations lists, per mutation, the tags to invalidate once it settles.
// id is the id of the mutated entity, empty for creations.
var invalidations = map[MutationKind]func(id string) []Tag{
	AddNewNote: func(string) []Tag { return []Tag{{NoteTag, ListID}} },
	UpdateNote: func(id string) []Tag { return []Tag{{NoteTag, id}} },
	DeleteNote: func(id string) []Tag { return []Tag{{NoteTag, id}} },
	AddNewUser: func(string) []Tag { return []Tag{{UserTag, ListID}} },
	UpdateUser: func(id string) []Tag { return []Tag{{UserTag, id}} },
	DeleteUser: func(id string) []Tag { return []Tag{{UserTag, id}} },
}

// InvalidatedTags returns the tags a mutation of kind on id invalidates.
func InvalidatedTags(kind MutationKind, id string) []Tag {
	f, ok := invalidations[kind]
	if !ok {
		return nil
	}
	return f(id)
}

// collectionTags returns the LIST tag plus one tag per id.
func collectionTags(t TagType, ids []string) []Tag {
	tags := make([]Tag, 0, len(ids)+1)
	tags = append(tags, Tag{t, ListID})
	for _, id := range ids {
		tags = append(tags, Tag{t, id})
	}
	return tags
}
