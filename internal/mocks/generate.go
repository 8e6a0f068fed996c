package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/profile --output domain/profile --outpkg profilemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name TierCalculator --dir ../domain/profile --output domain/profile --outpkg profilemock --filename tier_calculator_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/campaign --output domain/campaign --outpkg campaignmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ApplicationRepository --dir ../domain/campaign --output domain/campaign --outpkg campaignmock --filename application_repository_mock.go
