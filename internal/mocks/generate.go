// Package mocks provides gomock implementations of the ports used by the session and dashboard services.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	identity := mocks.NewMockIdentityClient(ctrl)
//	identity.EXPECT().Me(gomock.Any(), gomock.Any()).Return(user, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_storage_mock.go github.com/Esangam/Esangam-UI/internal/ports TokenStorage
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=identity_client_mock.go github.com/Esangam/Esangam-UI/internal/ports IdentityClient
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=notification_streamer_mock.go github.com/Esangam/Esangam-UI/internal/ports NotificationStreamer

// MemberAPI, PlatformAPI and SocietyAdminAPI share one file.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=sangam_api_mock.go github.com/Esangam/Esangam-UI/internal/ports MemberAPI,PlatformAPI,SocietyAdminAPI
