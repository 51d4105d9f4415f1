package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/SscSPs/komunity_app/internal/core/ports"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/shopspring/decimal"
)

func (c *Client) ObtainToken(ctx context.Context, email, password string) (string, error) {
	var res dto.TokenResponse
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "auth-token/",
		body:   dto.LoginRequest{Username: email, Password: password},
	}, &res)
	if err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", fmt.Errorf("%w: auth-token/ returned an empty token", apperrors.ErrNetwork)
	}
	return res.Token, nil
}

func (c *Client) SignUp(ctx context.Context, email, password string) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "users/signup/",
		body:   dto.SignUpRequest{Email: email, Password: password},
	}, nil)
	return err
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "password-reset/",
		body:   dto.PasswordResetRequest{Email: email},
	}, nil)
	return err
}

func (c *Client) FetchMyProfile(ctx context.Context, sc ports.SessionContext) (*domain.Profile, error) {
	var res dto.ProfileResponse
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "profiles/me/", sc: sc}, &res); err != nil {
		return nil, err
	}
	profile := res.ToDomain()
	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, sc ports.SessionContext, profileID int64, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	var res dto.ProfileResponse
	_, err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   fmt.Sprintf("profiles/%d/", profileID),
		body:   req,
		sc:     sc,
	}, &res)
	if err != nil {
		return nil, err
	}
	profile := res.ToDomain()
	return &profile, nil
}

func (c *Client) FetchGroup(ctx context.Context, sc ports.SessionContext, groupID int64) (*domain.Group, error) {
	var res dto.GroupResponse
	if _, err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("groups/%d/", groupID), sc: sc}, &res); err != nil {
		return nil, err
	}
	group := res.ToDomain()
	return &group, nil
}

func (c *Client) FetchPost(ctx context.Context, sc ports.SessionContext, postID int64) (*domain.Post, error) {
	var res dto.PostResponse
	if _, err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("posts/%d/", postID), sc: sc}, &res); err != nil {
		return nil, err
	}
	post := res.ToDomain()
	return &post, nil
}

func (c *Client) ListMyGroups(ctx context.Context, sc ports.SessionContext) ([]domain.Group, error) {
	var res []dto.GroupResponse
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "groups/mine/", sc: sc}, &res); err != nil {
		return nil, err
	}
	groups := make([]domain.Group, len(res))
	for i, g := range res {
		groups[i] = g.ToDomain()
	}
	return groups, nil
}

func (c *Client) ListGroupMembers(ctx context.Context, sc ports.SessionContext, groupID int64) ([]domain.Membership, error) {
	var res []dto.MembershipResponse
	if _, err := c.do(ctx, request{method: http.MethodGet, path: fmt.Sprintf("groups/%d/members/", groupID), sc: sc}, &res); err != nil {
		return nil, err
	}
	members := make([]domain.Membership, len(res))
	for i, m := range res {
		members[i] = m.ToDomain()
	}
	return members, nil
}

func (c *Client) FetchBalance(ctx context.Context, sc ports.SessionContext) (decimal.Decimal, error) {
	var res dto.BalanceResponse
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "wallets/balance/", sc: sc}, &res); err != nil {
		return decimal.Zero, err
	}
	return res.Balance, nil
}

func (c *Client) ListTransactions(ctx context.Context, sc ports.SessionContext, pageToken string) ([]domain.Transaction, string, error) {
	var query url.Values
	if pageToken != "" {
		query = url.Values{"page_token": []string{pageToken}}
	}
	var res []dto.TransactionResponse
	header, err := c.do(ctx, request{method: http.MethodGet, path: "transactions/", query: query, sc: sc}, &res)
	if err != nil {
		return nil, "", err
	}
	return dto.ToDomainTransactions(res), header.Get(dto.NextPageTokenHeader), nil
}

func (c *Client) TopUp(ctx context.Context, sc ports.SessionContext, req dto.TopUpRequest) error {
	_, err := c.do(ctx, request{method: http.MethodPost, path: "wallets/top_up/", body: req, sc: sc}, nil)
	return err
}

func (c *Client) SendMoney(ctx context.Context, sc ports.SessionContext, req dto.SendMoneyRequest) error {
	_, err := c.do(ctx, request{method: http.MethodPost, path: "wallets/send_money/", body: req, sc: sc}, nil)
	return err
}

func (c *Client) ContributeToDeceased(ctx context.Context, sc ports.SessionContext, req dto.ContributeRequest) (*domain.ContributionReceipt, error) {
	var res dto.WalletOperationResponse
	_, err := c.do(ctx, request{method: http.MethodPost, path: "wallets/contribute_to_deceased/", body: req, sc: sc}, &res)
	if err != nil {
		return nil, err
	}
	if res.Contribution == nil {
		return nil, nil
	}
	return &domain.ContributionReceipt{
		ContributionID: res.Contribution.ID,
		DeceasedName:   res.Contribution.Deceased,
		Amount:         res.Contribution.Amount,
		TotalRaised:    res.Contribution.TotalRaised,
	}, nil
}

func (c *Client) ListFunds(ctx context.Context, sc ports.SessionContext) ([]domain.DeceasedFund, error) {
	var res []dto.DeceasedResponse
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "deceased/", sc: sc}, &res); err != nil {
		return nil, err
	}
	return dto.ToDomainFunds(res), nil
}

func (c *Client) DisburseFund(ctx context.Context, sc ports.SessionContext, fundID int64) (*domain.Disbursement, error) {
	var res dto.DisbursementResponse
	_, err := c.do(ctx, request{method: http.MethodPost, path: fmt.Sprintf("deceased/%d/disburse_funds/", fundID), sc: sc}, &res)
	if err != nil {
		return nil, err
	}
	return &domain.Disbursement{
		Amount:      res.Amount,
		Beneficiary: res.Beneficiary,
		Transaction: res.Transaction.ToDomain(),
	}, nil
}
