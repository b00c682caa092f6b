package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name MatchReportRepository --dir ../domain/aggregate --output domain/aggregate --outpkg aggregatemock --filename match_report_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name AllTimeRepository --dir ../domain/aggregate --output domain/aggregate --outpkg aggregatemock --filename alltime_repository_mock.go
