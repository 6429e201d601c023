package main

import "github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/domain"

func str(s string) *string { return &s }

const placeholderImage = "/images/project-placeholder.svg"

var seedProjects = []domain.ProjectInput{
	{
		Slug:        "neural-voyager",
		Title:       "Neural Voyager",
		Summary:     "AI-powered travel planner that crafts personalized itineraries in seconds.",
		Description: "Combines GPT-powered recommendations with real-time flight and accommodation data to generate travel plans tailored to budget, pace, and interests.",
		Tech:        []string{"Next.js", "TypeScript", "OpenAI", "Tailwind CSS"},
		Links: []domain.Link{
			{Label: "Live", Href: "https://example.com/neural-voyager"},
			{Label: "GitHub", Href: "https://github.com/username/neural-voyager"},
		},
		Category: "AI Product",
		Year:     2024,
		Status:   domain.StatusShipped,
		Featured: true,
		Metrics:  str("12k+ itineraries planned in launch quarter"),
		Tags:     []string{"CLI"},
		ImageURL: str(placeholderImage),
	},
	{
		Slug:        "aurora-ui",
		Title:       "Aurora UI",
		Summary:     "Design system with token-based theming for rapid product teams.",
		Description: "Delivers composable UI primitives and a design token pipeline that syncs Figma, Storybook, and production code in one workflow.",
		Tech:        []string{"React", "Storybook", "Radix UI", "Turborepo"},
		Links: []domain.Link{
			{Label: "Live", Href: "https://example.com/aurora-ui"},
			{Label: "GitHub", Href: "https://github.com/username/aurora-ui"},
		},
		Category: "Design Systems",
		Year:     2023,
		Status:   domain.StatusShipped,
		Featured: true,
		Metrics:  str("Cut handoff time by 46% across three product teams"),
		Tags:     []string{"CLI"},
		ImageURL: str(placeholderImage),
	},
	{
		Slug:        "ledger-lite",
		Title:       "Ledger Lite",
		Summary:     "Minimal bookkeeping SaaS keeping solopreneurs audit-ready.",
		Description: "Automates invoice parsing, real-time cash flow dashboards, and quarterly tax exports with bank-level security integrations.",
		Tech:        []string{"Remix", "PostgreSQL", "Prisma", "AWS"},
		Links: []domain.Link{
			{Label: "Live", Href: "https://example.com/ledger-lite"},
			{Label: "GitHub", Href: "https://github.com/username/ledger-lite"},
		},
		Category: "Fintech SaaS",
		Year:     2022,
		Status:   domain.StatusShipped,
		Metrics:  str("Processes $4.2M in invoices each month"),
		Tags:     []string{"CLI"},
	},
	{
		Slug:        "orbit-ops",
		Title:       "Orbit Ops",
		Summary:     "Mission control dashboard for scaling operations teams.",
		Description: "Unified incident response, staffing insights, and SLAs into a single cockpit with command palettes and role-based automations.",
		Tech:        []string{"Next.js", "tRPC", "PlanetScale", "Tailwind CSS"},
		Links: []domain.Link{
			{Label: "Case Study", Href: "https://example.com/orbit-ops"},
			{Label: "GitHub", Href: "https://github.com/username/orbit-ops"},
		},
		Category: "Tools & Utilities",
		Year:     2024,
		Status:   domain.StatusShipped,
		Featured: true,
		Metrics:  str("Reduced on-call alert noise by 63%"),
		Tags:     []string{"CLI"},
		ImageURL: str(placeholderImage),
	},
	{
		Slug:        "canvas-cast",
		Title:       "Canvas Cast",
		Summary:     "Interactive storytelling tool for educators and creators.",
		Description: "Drag-and-drop scene builder with multiplayer editing, asset libraries, and adaptive streaming outputs.",
		Tech:        []string{"Next.js", "WebRTC", "Tailwind CSS", "Supabase"},
		Links: []domain.Link{
			{Label: "Live", Href: "https://example.com/canvas-cast"},
			{Label: "GitHub", Href: "https://github.com/username/canvas-cast"},
		},
		Category: "Tools & Utilities",
		Year:     2023,
		Status:   domain.StatusInBeta,
		Metrics:  str("3.1k collaborative storyboards built to date"),
		Tags:     []string{"CLI"},
	},
	{
		Slug:        "atlas-query",
		Title:       "Atlas Query",
		Summary:     "Self-serve data portal with contract testing and lineage maps.",
		Description: "Empowered analysts to ship governed datasets faster with column-level lineage, drift alerts, and documentation hubs.",
		Tech:        []string{"Next.js", "GraphQL", "Hasura", "Tailwind CSS"},
		Links: []domain.Link{
			{Label: "Case Study", Href: "https://example.com/atlas-query"},
			{Label: "GitHub", Href: "https://github.com/username/atlas-query"},
		},
		Category: "Tools & Utilities",
		Year:     2021,
		Status:   domain.StatusShipped,
		Metrics:  str("Serves 500+ curated datasets with SLA tracking"),
		Tags:     []string{"Data", "Governance"},
	},
	{
		Slug:        "nimbus-guard",
		Title:       "Nimbus Guard",
		Summary:     "Cloud security agent delivering posture insights in minutes.",
		Description: "Surface misconfigurations, drift, and compliance gaps across multi-cloud environments with real-time remediation guides.",
		Tech:        []string{"Next.js", "Rust", "gRPC", "Tailwind CSS"},
		Links: []domain.Link{
			{Label: "Live", Href: "https://example.com/nimbus-guard"},
			{Label: "GitHub", Href: "https://github.com/username/nimbus-guard"},
		},
		Category: "Tools & Utilities",
		Year:     2020,
		Status:   domain.StatusShipped,
		Metrics:  str("Closed compliance gaps 70% faster for enterprise teams"),
		Tags:     []string{"Security", "DevOps"},
	},
}
