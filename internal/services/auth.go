package services

import (
  "context"
  "fmt"
  "net/url"
  "strings"
  "time"
  "gorm.io/gorm"
  "golang.org/x/crypto/bcrypt"
  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "github.com/interface8/Prompt-8/internal/apierr"
  "github.com/interface8/Prompt-8/internal/logger"
  "github.com/interface8/Prompt-8/internal/repos"
  "github.com/interface8/Prompt-8/internal/requestdata"
  "github.com/interface8/Prompt-8/internal/types"
)

type JWTClaims struct {
  jwt.RegisteredClaims
}

type AuthService interface {
  RegisterUser(ctx context.Context, user *types.User) error
  LoginUser(ctx context.Context, email, password string) (string, string, error)
  RefreshUser(ctx context.Context) (string, string, error)
  LogoutUser(ctx context.Context) error
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  GetAccessTTL() time.Duration
}

type authService struct {
  db              *gorm.DB
  log             *logger.Logger
  userRepo        repos.UserRepo
  userTokenRepo   repos.UserTokenRepo
  jwtSecretKey    string
  accessTTL       time.Duration
  refreshTTL      time.Duration
}

func NewAuthService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  userTokenRepo repos.UserTokenRepo,
  jwtSecretKey string,
  accessTTL time.Duration,
  refreshTTL time.Duration,
) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    db:             db,
    log:            serviceLog,
    userRepo:       userRepo,
    userTokenRepo:  userTokenRepo,
    jwtSecretKey:   jwtSecretKey,
    accessTTL:      accessTTL,
    refreshTTL:     refreshTTL,
  }
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
  user.Email = strings.ToLower(strings.TrimSpace(user.Email))
  user.Name = strings.TrimSpace(user.Name)
  if user.Email == "" || user.Name == "" || user.Password == "" {
    return apierr.Validation(fmt.Errorf("email, name and password are required"))
  }

  exists, eErr := as.userRepo.EmailExists(ctx, nil, user.Email)
  if eErr != nil {
    return apierr.Internal(fmt.Errorf("Failed to check existing email: %w", eErr))
  }
  if exists {
    return apierr.Validation(fmt.Errorf("User already exists"))
  }

  hashed, hErr := bcrypt.GenerateFromPassword([]byte(user.Password), 10)
  if hErr != nil {
    return apierr.Internal(fmt.Errorf("Failed to hash password: %w", hErr))
  }
  user.Password = string(hashed)

  if user.Image == "" {
    user.Image = "https://ui-avatars.com/api/?name=" + url.QueryEscape(user.Name) + "&background=6366f1&color=fff"
  }
  if user.Role == "" {
    user.Role = types.RoleUser
  }

  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    user.ID = uuid.New()
    if _, ucErr := as.userRepo.Create(ctx, tx, []*types.User{user}); ucErr != nil {
      return apierr.Internal(fmt.Errorf("Failed to create user: %w", ucErr))
    }
    return nil
  })
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
  email = strings.ToLower(strings.TrimSpace(email))
  if email == "" || password == "" {
    return "", "", apierr.Validation(fmt.Errorf("email and password are required"))
  }

  users, usErr := as.userRepo.GetByEmails(ctx, nil, []string{email})
  if usErr != nil {
    return "", "", apierr.Internal(fmt.Errorf("Error retrieving user by email: %w", usErr))
  }
  if len(users) == 0 {
    return "", "", apierr.Unauthorized(fmt.Errorf("Invalid email or password"))
  }

  user := users[0]
  if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
    return "", "", apierr.Unauthorized(fmt.Errorf("Invalid email or password"))
  }

  var accessToken string
  var refreshToken string
  if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    foundTokens, ftErr := as.userTokenRepo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
    if ftErr != nil {
      return fmt.Errorf("Failed to check user tokens: %w", ftErr)
    }
    staleIDs := make([]uuid.UUID, 0, len(foundTokens))
    for _, tok := range foundTokens {
      staleIDs = append(staleIDs, tok.ID)
    }
    if dtErr := as.userTokenRepo.DeleteByIDs(ctx, tx, staleIDs); dtErr != nil {
      return fmt.Errorf("Failed to delete stale user tokens: %w", dtErr)
    }

    tok, genErr := as.generateAccessToken(user)
    if genErr != nil {
      return fmt.Errorf("Generate access token error: %w", genErr)
    }
    accessToken = tok
    refreshToken = uuid.New().String()
    userToken := types.UserToken{
      ID:             uuid.New(),
      UserID:         user.ID,
      AccessToken:    accessToken,
      RefreshToken:   refreshToken,
      ExpiresAt:      time.Now().Add(as.refreshTTL),
    }
    if _, ctErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); ctErr != nil {
      as.log.Warn("Create User Token Error", "error", ctErr)
      return fmt.Errorf("Create User Token Error: %w", ctErr)
    }
    return nil
  }); err != nil {
    return "", "", apierr.Internal(err)
  }
  return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return "", "", apierr.Unauthorized(fmt.Errorf("No request data found in context"))
  }
  if rd.RefreshToken == "" {
    return "", "", apierr.Unauthorized(fmt.Errorf("Refresh token not found in request data"))
  }

  var accessToken string
  var newRefreshTokenStr string
  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    foundTokens, ftErr := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{rd.RefreshToken})
    if ftErr != nil {
      return apierr.Internal(fmt.Errorf("Error fetching refresh token: %w", ftErr))
    }
    if len(foundTokens) == 0 {
      return apierr.Unauthorized(fmt.Errorf("Unknown refresh token"))
    }
    existingToken := foundTokens[0]
    if existingToken.ExpiresAt.Before(time.Now()) {
      if dtErr := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existingToken.ID}); dtErr != nil {
        return apierr.Internal(fmt.Errorf("Refresh token expired, error deleting: %w", dtErr))
      }
      return apierr.Unauthorized(fmt.Errorf("Refresh token expired"))
    }

    users, uErr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existingToken.UserID})
    if uErr != nil {
      return apierr.Internal(fmt.Errorf("Failed to load user for refresh: %w", uErr))
    }
    if len(users) == 0 {
      return apierr.Unauthorized(fmt.Errorf("No user found for the given refresh token"))
    }
    user := users[0]

    tok, genErr := as.generateAccessToken(user)
    if genErr != nil {
      return apierr.Internal(fmt.Errorf("Failed to generate new access token: %w", genErr))
    }
    accessToken = tok
    newRefreshTokenStr = uuid.New().String()
    newUserToken := types.UserToken{
      ID:             uuid.New(),
      UserID:         user.ID,
      AccessToken:    tok,
      RefreshToken:   newRefreshTokenStr,
      ExpiresAt:      time.Now().Add(as.refreshTTL),
    }
    if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&newUserToken}); cErr != nil {
      return apierr.Internal(fmt.Errorf("Failed to create new user token: %w", cErr))
    }
    if dErr := as.userTokenRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existingToken.ID}); dErr != nil {
      return apierr.Internal(fmt.Errorf("Failed to remove old refresh token: %w", dErr))
    }
    return nil
  })
  if err != nil {
    as.log.Warn("Failed refresh transaction", "error", err)
    return "", "", err
  }
  return accessToken, newRefreshTokenStr, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil {
    return apierr.Unauthorized(fmt.Errorf("No request data found in context"))
  }
  if rd.TokenString == "" {
    return apierr.Unauthorized(fmt.Errorf("Token string in request data empty"))
  }
  return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
    if ftErr != nil {
      return apierr.Internal(fmt.Errorf("Error finding user token from token string: %w", ftErr))
    }
    ids := make([]uuid.UUID, 0, len(foundTokens))
    for _, tok := range foundTokens {
      ids = append(ids, tok.ID)
    }
    if tdErr := as.userTokenRepo.DeleteByIDs(ctx, tx, ids); tdErr != nil {
      return apierr.Internal(fmt.Errorf("Error deleting user token: %w", tdErr))
    }
    return nil
  })
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
  claims := JWTClaims{
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID.String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
      IssuedAt:  jwt.NewNumericDate(time.Now()),
    },
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  if tokenString == "" {
    return ctx, nil
  }
  parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return ctx, fmt.Errorf("Failed to parse token: %w", err)
  }
  claims, ok := parsedToken.Claims.(*JWTClaims)
  if !ok || !parsedToken.Valid {
    return ctx, fmt.Errorf("Invalid or expired JWT token")
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, fmt.Errorf("Invalid user id in token: %w", err)
  }

  var refreshTokenStr string
  foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
  if ftErr != nil {
    as.log.Warn("Error fetching user token by access token", "error", ftErr)
    return ctx, fmt.Errorf("Failed to fetch user token by access token: %w", ftErr)
  }
  if len(foundTokens) > 0 {
    refreshTokenStr = foundTokens[0].RefreshToken
  }

  rd := &requestdata.RequestData{
    TokenString:  tokenString,
    RefreshToken: refreshTokenStr,
    UserID:       userID,
  }
  ctx = requestdata.WithRequestData(ctx, rd)
  return ctx, nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}
