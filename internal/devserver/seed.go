package devserver

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"mentorlink-cli/internal/model"
)

type seedUser struct {
	user
	password string
}

var seedUsers = []seedUser{
	{
		user: user{
			Email:     "mentor@test.com",
			Name:      "테스트멘토",
			Role:      model.RoleMentor,
			Intro:     "테스트 멘토입니다.",
			TechStack: "Python, FastAPI",
		},
		password: "mentor1234",
	},
	{
		user: user{
			Email:     "mentee@test.com",
			Name:      "테스트멘티",
			Role:      model.RoleMentee,
			Intro:     "테스트 멘티입니다.",
			TechStack: "React, Vite",
		},
		password: "mentee1234",
	},
}

func (s *Server) seed(ctx context.Context) error {
	for _, su := range seedUsers {
		_, err := s.store.userByEmail(ctx, su.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, errNotFound) {
			return err
		}
		hash, err := hashPassword(su.password, s.cost)
		if err != nil {
			return err
		}
		u := su.user
		u.PasswordHash = hash
		if err := s.store.createUser(ctx, u); err != nil {
			return err
		}
		s.log.Info("seeded user", zap.String("email", u.Email), zap.String("role", string(u.Role)))
	}
	return nil
}
