package site

// GuideSidebar returns the sidebar tree of the guide section with the two
// group headings groupA and groupB.
func GuideSidebar(groupA, groupB string) []SidebarGroup {
	return []SidebarGroup{
		{Text: groupA, Children: pages("README.md", "1.md", "2.md")},
		{Text: groupB, Children: pages("custom-validator.md", "1.md", "2.md", "3.md")},
	}
}

// ComponentsSidebar returns the sidebar tree of the components section with
// the two group headings groupA and groupB.
func ComponentsSidebar(groupA, groupB string) []SidebarGroup {
	return []SidebarGroup{
		{Text: groupA, Children: pages("README.md", "1.md", "2.md")},
		{Text: groupB, Children: pages("custom-components.md")},
	}
}

func pages(paths ...string) []SidebarEntry {
	out := make([]SidebarEntry, len(paths))
	for i, p := range paths {
		out[i] = Page(p)
	}
	return out
}
