package simpleprice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cgweb/market-proxy/cache"
	"github.com/cgweb/market-proxy/coingecko"
	"github.com/cgweb/market-proxy/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAPIClient implements APIClient for testing
type MockAPIClient struct {
	mock.Mock
}

func (m *MockAPIClient) FetchSimplePrice(ctx context.Context, params PriceParams) (map[string]map[string]float64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]map[string]float64), args.Error(1)
}

func (m *MockAPIClient) Healthy() bool {
	args := m.Called()
	return args.Bool(0)
}

func createTestService(client APIClient) *Service {
	service := NewService(cache.NewGoCache(30*time.Second), config.DefaultConfig())
	service.apiClient = client
	return service
}

func bitcoinPayload() map[string]map[string]float64 {
	return map[string]map[string]float64{
		"bitcoin": {
			"usd":             50000.0,
			"usd_24h_change":  -2.35,
			"last_updated_at": 1710000000,
		},
	}
}

func TestService_SimplePrice_MissThenHit(t *testing.T) {
	mockClient := new(MockAPIClient)
	service := createTestService(mockClient)

	params := PriceParams{CoinID: "bitcoin", Currency: "usd"}
	mockClient.On("FetchSimplePrice", mock.Anything, params).Return(bitcoinPayload(), nil).Once()

	quote, err := service.SimplePrice(context.Background(), params)
	require.NoError(t, err)
	assert.False(t, quote.Cached)
	assert.Equal(t, "bitcoin", quote.CoinID)
	assert.Equal(t, "usd", quote.Currency)
	assert.Equal(t, 50000.0, quote.Price)
	require.NotNil(t, quote.LastUpdatedAt)
	assert.Equal(t, int64(1710000000), *quote.LastUpdatedAt)
	assert.Nil(t, quote.Change24h) // change not requested

	cached, err := service.SimplePrice(context.Background(), params)
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	assert.Equal(t, quote.Price, cached.Price)

	mockClient.AssertExpectations(t)
}

func TestService_SimplePrice_FingerprintCaseInsensitive(t *testing.T) {
	mockClient := new(MockAPIClient)
	service := createTestService(mockClient)

	normalized := PriceParams{CoinID: "bitcoin", Currency: "usd"}
	mockClient.On("FetchSimplePrice", mock.Anything, normalized).Return(bitcoinPayload(), nil).Once()

	_, err := service.SimplePrice(context.Background(), PriceParams{CoinID: "Bitcoin", Currency: "USD"})
	require.NoError(t, err)

	quote, err := service.SimplePrice(context.Background(), PriceParams{CoinID: "bitcoin", Currency: "usd"})
	require.NoError(t, err)
	assert.True(t, quote.Cached)

	mockClient.AssertExpectations(t)
}

func TestService_SimplePrice_ChangeFlagSeparatesEntries(t *testing.T) {
	mockClient := new(MockAPIClient)
	service := createTestService(mockClient)

	withoutChange := PriceParams{CoinID: "bitcoin", Currency: "usd"}
	withChange := PriceParams{CoinID: "bitcoin", Currency: "usd", Include24hChange: true}

	mockClient.On("FetchSimplePrice", mock.Anything, withoutChange).Return(bitcoinPayload(), nil).Once()
	mockClient.On("FetchSimplePrice", mock.Anything, withChange).Return(bitcoinPayload(), nil).Once()

	plain, err := service.SimplePrice(context.Background(), withoutChange)
	require.NoError(t, err)
	assert.Nil(t, plain.Change24h)

	detailed, err := service.SimplePrice(context.Background(), withChange)
	require.NoError(t, err)
	require.NotNil(t, detailed.Change24h)
	assert.InDelta(t, -2.35, *detailed.Change24h, 1e-9)

	mockClient.AssertExpectations(t)
}

func TestService_SimplePrice_EmptyCoinID(t *testing.T) {
	mockClient := new(MockAPIClient)
	service := createTestService(mockClient)

	_, err := service.SimplePrice(context.Background(), PriceParams{CoinID: "   "})
	require.Error(t, err)

	var validationErr *coingecko.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	mockClient.AssertNotCalled(t, "FetchSimplePrice")
}

func TestService_SimplePrice_CoinMissingFromResponse(t *testing.T) {
	mockClient := new(MockAPIClient)
	service := createTestService(mockClient)

	params := PriceParams{CoinID: "nonsense", Currency: "usd"}
	mockClient.On("FetchSimplePrice", mock.Anything, params).
		Return(map[string]map[string]float64{}, nil).Once()

	_, err := service.SimplePrice(context.Background(), params)
	require.Error(t, err)

	var notFound *coingecko.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "nonsense", notFound.CoinID)
	assert.Equal(t, "usd", notFound.Currency)
}

func TestService_SimplePrice_CurrencyMissingFromResponse(t *testing.T) {
	mockClient := new(MockAPIClient)
	service := createTestService(mockClient)

	params := PriceParams{CoinID: "bitcoin", Currency: "xyz"}
	mockClient.On("FetchSimplePrice", mock.Anything, params).
		Return(map[string]map[string]float64{"bitcoin": {"usd": 50000.0}}, nil).Once()

	_, err := service.SimplePrice(context.Background(), params)

	var notFound *coingecko.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "xyz", notFound.Currency)
}

func TestService_SimplePrice_UpstreamErrorPropagates(t *testing.T) {
	mockClient := new(MockAPIClient)
	service := createTestService(mockClient)

	params := PriceParams{CoinID: "bitcoin", Currency: "usd"}
	upstreamErr := &coingecko.StatusError{StatusCode: 500, Snippet: "server error"}
	mockClient.On("FetchSimplePrice", mock.Anything, params).Return(nil, upstreamErr).Once()

	_, err := service.SimplePrice(context.Background(), params)
	var statusErr *coingecko.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 500, statusErr.StatusCode)
}

func TestService_Convert(t *testing.T) {
	mockClient := new(MockAPIClient)
	service := createTestService(mockClient)

	// Convert always fetches without the 24h change flag
	params := PriceParams{CoinID: "bitcoin", Currency: "usd"}
	mockClient.On("FetchSimplePrice", mock.Anything, params).Return(bitcoinPayload(), nil).Once()

	conversion, err := service.Convert(context.Background(), "bitcoin", "usd", 0.5)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, conversion.Rate)
	assert.Equal(t, 25000.0, conversion.Result)
	assert.Equal(t, 0.5, conversion.Amount)
	assert.False(t, conversion.Cached)
	require.NotNil(t, conversion.LastUpdatedAt)
	assert.Equal(t, int64(1710000000), *conversion.LastUpdatedAt)

	// A second conversion rides the cached quote
	again, err := service.Convert(context.Background(), "bitcoin", "usd", 2)
	require.NoError(t, err)
	assert.Equal(t, 100000.0, again.Result)
	assert.True(t, again.Cached)

	mockClient.AssertExpectations(t)
}

func TestService_Convert_ErrorForwarded(t *testing.T) {
	mockClient := new(MockAPIClient)
	service := createTestService(mockClient)

	params := PriceParams{CoinID: "nonsense", Currency: "usd"}
	mockClient.On("FetchSimplePrice", mock.Anything, params).
		Return(map[string]map[string]float64{}, nil).Once()

	_, err := service.Convert(context.Background(), "nonsense", "usd", 1)

	var notFound *coingecko.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestService_StartWithoutCache(t *testing.T) {
	service := NewService(nil, config.DefaultConfig())
	err := service.Start(context.Background())
	assert.Error(t, err)
}
