package domain

import (
	"sort"
	"time"
)

// WorkoutFolder is a hierarchical container for plans and sub-folders.
type WorkoutFolder struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Icon       string    `bson:"icon" json:"icon"`
	Color      string    `bson:"color" json:"color"`
	ParentID   string    `bson:"parentId,omitempty" json:"parentId,omitempty"` // empty means root
	Order      int       `bson:"order" json:"order"`
	IsExpanded bool      `bson:"isExpanded,omitempty" json:"isExpanded,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

const (
	DefaultFolderIcon  = "folder"
	DefaultFolderColor = "#3B82F6"
)

func (f *WorkoutFolder) ApplyDefaults() {
	if f.Icon == "" {
		f.Icon = DefaultFolderIcon
	}
	if f.Color == "" {
		f.Color = DefaultFolderColor
	}
}

func (f *WorkoutFolder) Touch(now time.Time) {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now
}

// ReparentOnDelete applies the folder deletion rule to in-memory collections:
// the folder is dropped, its direct sub-folders move to the folder's own
// parent and its plans move to the root. Nothing is deleted transitively.
// The returned bool is false when no folder had that id.
func ReparentOnDelete(folders []WorkoutFolder, plans []WorkoutPlan, folderID string, now time.Time) ([]WorkoutFolder, []WorkoutPlan, bool) {
	var (
		deleted WorkoutFolder
		found   bool
	)
	kept := make([]WorkoutFolder, 0, len(folders))
	for _, f := range folders {
		if f.ID == folderID {
			deleted = f
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		return folders, plans, false
	}

	for i := range kept {
		if kept[i].ParentID == folderID {
			kept[i].ParentID = deleted.ParentID
			kept[i].UpdatedAt = now
		}
	}
	moved := make([]WorkoutPlan, len(plans))
	copy(moved, plans)
	for i := range moved {
		if moved[i].FolderID == folderID {
			moved[i].FolderID = ""
			moved[i].UpdatedAt = now
		}
	}
	return kept, moved, true
}

// FolderNode is one level of the folder tree.
type FolderNode struct {
	Folder     WorkoutFolder `json:"folder"`
	Subfolders []*FolderNode `json:"subfolders"`
	Plans      []WorkoutPlan `json:"plans"`
}

// FolderTree is the root of the folder hierarchy.
type FolderTree struct {
	Folders []*FolderNode `json:"folders"`
	Plans   []WorkoutPlan `json:"plans"` // plans without a folder
}

// BuildFolderTree arranges folders and plans by parent reference, sorted by
// order. Items whose parent is missing are attached to the root.
func BuildFolderTree(folders []WorkoutFolder, plans []WorkoutPlan) *FolderTree {
	nodes := make(map[string]*FolderNode, len(folders))
	for _, f := range folders {
		nodes[f.ID] = &FolderNode{Folder: f, Subfolders: []*FolderNode{}, Plans: []WorkoutPlan{}}
	}

	tree := &FolderTree{Folders: []*FolderNode{}, Plans: []WorkoutPlan{}}
	for _, f := range folders {
		node := nodes[f.ID]
		parent, ok := nodes[f.ParentID]
		if f.ParentID == "" || !ok || f.ParentID == f.ID {
			tree.Folders = append(tree.Folders, node)
			continue
		}
		parent.Subfolders = append(parent.Subfolders, node)
	}
	for _, p := range plans {
		if node, ok := nodes[p.FolderID]; ok {
			node.Plans = append(node.Plans, p)
			continue
		}
		tree.Plans = append(tree.Plans, p)
	}

	sortNodes(tree.Folders)
	sortPlans(tree.Plans)
	for _, node := range nodes {
		sortNodes(node.Subfolders)
		sortPlans(node.Plans)
	}
	return tree
}

func sortNodes(nodes []*FolderNode) {
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Folder.Order < nodes[j].Folder.Order })
}

func sortPlans(plans []WorkoutPlan) {
	sort.SliceStable(plans, func(i, j int) bool { return plans[i].Order < plans[j].Order })
}
