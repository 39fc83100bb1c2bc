package main

import (
	"context"
	"fmt"

	"prayer-circle/domain/auth"
	"prayer-circle/domain/church"
	"prayer-circle/domain/group"
	"prayer-circle/domain/prayer"
	"prayer-circle/utils"
)

// seedStores groups the stores the demo dataset is written through. Working
// through the store interfaces keeps the same dataset usable for both the
// SQL seed subcommand and the in-memory fallback.
type seedStores struct {
	users    auth.Store
	churches church.Store
	groups   group.Store
	prayers  prayer.Store
}

func strPtr(s string) *string { return &s }

func urgencyPtr(u prayer.Urgency) *prayer.Urgency { return &u }

// seedAll loads a small demo dataset: two accounts, an approved church with a
// group, and a handful of approved prayers so listings and search have
// something to show.
func seedAll(ctx context.Context, s seedStores) error {
	adminHash, err := utils.HashPassword("admin-password")
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	memberHash, err := utils.HashPassword("member-password")
	if err != nil {
		return fmt.Errorf("hash member password: %w", err)
	}

	admin, err := s.users.Create(ctx, auth.User{
		Email:        "admin@prayercircle.app",
		Name:         "Site Admin",
		PasswordHash: adminHash,
		Role:         "admin",
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	member, err := s.users.Create(ctx, auth.User{
		Email:        "grace@prayercircle.app",
		Name:         "Grace Kim",
		PasswordHash: memberHash,
		Role:         "user",
	})
	if err != nil {
		return fmt.Errorf("seed member: %w", err)
	}

	home, err := s.churches.Create(ctx, church.Church{
		Name:        "Grace Community Church",
		Description: strPtr("A welcoming community in the heart of the city."),
		City:        strPtr("Springfield"),
		Status:      church.StatusApproved,
		CreatedBy:   &admin.ID,
	})
	if err != nil {
		return fmt.Errorf("seed church: %w", err)
	}
	if _, err := s.churches.Create(ctx, church.Church{
		Name:      "Riverside Baptist",
		City:      strPtr("Springfield"),
		Status:    church.StatusApproved,
		CreatedBy: &admin.ID,
	}); err != nil {
		return fmt.Errorf("seed church: %w", err)
	}
	if _, err := s.churches.Create(ctx, church.Church{
		Name:        "New Hope Fellowship",
		Description: strPtr("Church plant awaiting directory review."),
		CreatedBy:   &member.ID,
	}); err != nil {
		return fmt.Errorf("seed church: %w", err)
	}
	if _, err := s.churches.AddMember(ctx, church.Member{
		ChurchID: home.ID, UserID: member.ID, Verified: true,
	}); err != nil {
		return fmt.Errorf("seed church member: %w", err)
	}

	circle, err := s.groups.Create(ctx, group.Group{
		ChurchID:    home.ID,
		Name:        "Wednesday Prayer Circle",
		Description: strPtr("Midweek intercession group."),
		CreatedBy:   &member.ID,
	})
	if err != nil {
		return fmt.Errorf("seed group: %w", err)
	}
	if _, err := s.groups.Create(ctx, group.Group{
		ChurchID:    home.ID,
		Name:        "Young Adults",
		Description: strPtr("Prayer and support for the 20s-30s crowd."),
		CreatedBy:   &member.ID,
	}); err != nil {
		return fmt.Errorf("seed group: %w", err)
	}
	if _, err := s.groups.AddMember(ctx, group.Member{
		GroupID: circle.ID, UserID: member.ID,
	}); err != nil {
		return fmt.Errorf("seed group member: %w", err)
	}

	seedPrayers := []prayer.Prayer{
		{
			Title:            "Healing for my mother",
			Body:             "My mother is recovering from surgery this week. Please pray for a smooth recovery and peace for our family.",
			UserID:           &member.ID,
			ChurchID:         &home.ID,
			IsPublic:         true,
			Status:           prayer.StatusActive,
			Categories:       prayer.JoinCategories([]string{"Health & Healing", "Family & Relationships"}),
			Urgency:          urgencyPtr(prayer.UrgencyHigh),
			ModerationStatus: prayer.ModerationApproved,
		},
		{
			Title:            "Guidance on a job decision",
			Body:             "I have two offers and need wisdom to choose the right path for my family.",
			UserID:           &member.ID,
			IsPublic:         true,
			Status:           prayer.StatusActive,
			Categories:       prayer.JoinCategories([]string{"Guidance & Decisions", "Financial & Work"}),
			Urgency:          urgencyPtr(prayer.UrgencyMedium),
			ModerationStatus: prayer.ModerationApproved,
		},
		{
			Title:            "Thankful for answered prayer",
			Body:             "Last month I asked for prayer about my exams. I passed! Grateful for this community.",
			IsAnonymous:      true,
			AnonymousName:    strPtr("A grateful student"),
			IsPublic:         true,
			Status:           prayer.StatusResolved,
			Categories:       prayer.JoinCategories([]string{"Thanksgiving & Praise"}),
			Urgency:          urgencyPtr(prayer.UrgencyLow),
			ModerationStatus: prayer.ModerationApproved,
		},
		{
			Title:            "Struggling with anxiety",
			Body:             "Work stress has been overwhelming lately and I can't sleep. Please pray for peace of mind.",
			UserID:           &member.ID,
			ChurchID:         &home.ID,
			GroupID:          &circle.ID,
			IsPublic:         true,
			Status:           prayer.StatusActive,
			Categories:       prayer.JoinCategories([]string{"Mental Health"}),
			Urgency:          urgencyPtr(prayer.UrgencyMedium),
			ModerationStatus: prayer.ModerationApproved,
		},
		{
			Title:            "Outreach event next month",
			Body:             "Our church is hosting a community meal. Pray for the volunteers and the neighbors we will meet.",
			UserID:           &member.ID,
			ChurchID:         &home.ID,
			IsPublic:         true,
			Status:           prayer.StatusActive,
			Categories:       prayer.JoinCategories([]string{"Community & Church"}),
			Urgency:          urgencyPtr(prayer.UrgencyLow),
			ModerationStatus: prayer.ModerationApproved,
		},
	}
	for _, p := range seedPrayers {
		if _, err := s.prayers.Create(ctx, p); err != nil {
			return fmt.Errorf("seed prayer %q: %w", p.Title, err)
		}
	}
	return nil
}
