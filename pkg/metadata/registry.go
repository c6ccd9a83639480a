// Package metadata maps source-format file paths to metadata type/member
// pairs and accumulates them into deployable changesets.
package metadata

import "sort"

// Type describes one metadata type as laid out in a source tree.
type Type struct {
	// Directory is the folder under the source dir that holds this type.
	Directory string `yaml:"directory" toml:"directory" json:"directory"`
	// Name is the metadata API type name emitted into the manifest.
	Name string `yaml:"name" toml:"name" json:"name"`
	// Suffix is the file suffix without the dot ("cls"). Empty means any.
	Suffix string `yaml:"suffix" toml:"suffix" json:"suffix"`
	// MetaFile indicates the type carries a "-meta.xml" sidecar per member.
	MetaFile bool `yaml:"meta_file" toml:"meta_file" json:"meta_file"`
	// InFolder indicates members are grouped into named folders.
	InFolder bool `yaml:"in_folder" toml:"in_folder" json:"in_folder"`
	// Bundle indicates one directory per member (aura, lwc).
	Bundle bool `yaml:"bundle" toml:"bundle" json:"bundle"`
}

// builtinTypes is the static lookup table for the classic metadata source
// layout. It covers the common surface, not the full one; projects extend it
// with a types override file.
var builtinTypes = []Type{
	{Directory: "applications", Name: "CustomApplication", Suffix: "app"},
	{Directory: "approvalProcesses", Name: "ApprovalProcess", Suffix: "approvalProcess"},
	{Directory: "assignmentRules", Name: "AssignmentRules", Suffix: "assignmentRules"},
	{Directory: "aura", Name: "AuraDefinitionBundle", Bundle: true},
	{Directory: "classes", Name: "ApexClass", Suffix: "cls", MetaFile: true},
	{Directory: "communities", Name: "Community", Suffix: "community"},
	{Directory: "components", Name: "ApexComponent", Suffix: "component", MetaFile: true},
	{Directory: "connectedApps", Name: "ConnectedApp", Suffix: "connectedApp"},
	{Directory: "customMetadata", Name: "CustomMetadata", Suffix: "md"},
	{Directory: "customPermissions", Name: "CustomPermission", Suffix: "customPermission"},
	{Directory: "dashboards", Name: "Dashboard", Suffix: "dashboard", InFolder: true},
	{Directory: "documents", Name: "Document", MetaFile: true, InFolder: true},
	{Directory: "duplicateRules", Name: "DuplicateRule", Suffix: "duplicateRule"},
	{Directory: "email", Name: "EmailTemplate", Suffix: "email", MetaFile: true, InFolder: true},
	{Directory: "flexipages", Name: "FlexiPage", Suffix: "flexipage"},
	{Directory: "flows", Name: "Flow", Suffix: "flow"},
	{Directory: "globalValueSets", Name: "GlobalValueSet", Suffix: "globalValueSet"},
	{Directory: "groups", Name: "Group", Suffix: "group"},
	{Directory: "labels", Name: "CustomLabels", Suffix: "labels"},
	{Directory: "layouts", Name: "Layout", Suffix: "layout"},
	{Directory: "lwc", Name: "LightningComponentBundle", Bundle: true},
	{Directory: "matchingRules", Name: "MatchingRules", Suffix: "matchingRule"},
	{Directory: "namedCredentials", Name: "NamedCredential", Suffix: "namedCredential"},
	{Directory: "objects", Name: "CustomObject", Suffix: "object"},
	{Directory: "objectTranslations", Name: "CustomObjectTranslation", Suffix: "objectTranslation"},
	{Directory: "pages", Name: "ApexPage", Suffix: "page", MetaFile: true},
	{Directory: "permissionsets", Name: "PermissionSet", Suffix: "permissionset"},
	{Directory: "profiles", Name: "Profile", Suffix: "profile"},
	{Directory: "queues", Name: "Queue", Suffix: "queue"},
	{Directory: "quickActions", Name: "QuickAction", Suffix: "quickAction"},
	{Directory: "remoteSiteSettings", Name: "RemoteSiteSetting", Suffix: "remoteSite"},
	{Directory: "reports", Name: "Report", Suffix: "report", InFolder: true},
	{Directory: "reportTypes", Name: "ReportType", Suffix: "reportType"},
	{Directory: "roles", Name: "Role", Suffix: "role"},
	{Directory: "settings", Name: "Settings", Suffix: "settings"},
	{Directory: "sharingRules", Name: "SharingRules", Suffix: "sharingRules"},
	{Directory: "sites", Name: "CustomSite", Suffix: "site"},
	{Directory: "standardValueSets", Name: "StandardValueSet", Suffix: "standardValueSet"},
	{Directory: "staticresources", Name: "StaticResource", Suffix: "resource", MetaFile: true},
	{Directory: "tabs", Name: "CustomTab", Suffix: "tab"},
	{Directory: "translations", Name: "Translations", Suffix: "translation"},
	{Directory: "triggers", Name: "ApexTrigger", Suffix: "trigger", MetaFile: true},
	{Directory: "workflows", Name: "Workflow", Suffix: "workflow"},
}

// Registry resolves source directories to metadata types.
type Registry struct {
	byDir map[string]Type
}

// NewRegistry returns a registry seeded with the built-in type table.
func NewRegistry() *Registry {
	r := &Registry{byDir: make(map[string]Type, len(builtinTypes))}
	r.Merge(builtinTypes)
	return r
}

// Merge adds types to the registry, overriding existing entries that share a
// directory.
func (r *Registry) Merge(types []Type) {
	for _, t := range types {
		if t.Directory == "" || t.Name == "" {
			continue
		}
		r.byDir[t.Directory] = t
	}
}

// ByDirectory looks up the type registered for a source directory.
func (r *Registry) ByDirectory(dir string) (Type, bool) {
	t, ok := r.byDir[dir]
	return t, ok
}

// Types returns all registered types ordered by directory.
func (r *Registry) Types() []Type {
	out := make([]Type, 0, len(r.byDir))
	for _, t := range r.byDir {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Directory < out[j].Directory })
	return out
}
