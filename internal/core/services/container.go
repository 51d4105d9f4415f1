package services

import (
	portsrepo "github.com/SscSPs/komunity_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/platform/config"
)

// NewServiceContainer wires the backend services onto the repositories.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:      NewUserService(repos.UserRepo, cfg.ResetTokenExpiry),
		Token:     NewTokenService(cfg),
		Profile:   NewProfileService(repos.ProfileRepo),
		Community: NewCommunityService(repos.CommunityRepo),
		Wallet:    NewWalletService(repos),
		Fund:      NewFundService(repos.FundRepo, repos.CommunityRepo),
	}
}
