package cli

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/spf13/cobra"

	"github.com/saulo-duarte/quizlens/internal/container"
)

func newLambdaCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Serve the API as an AWS Lambda behind API Gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(*configPath)
			if err != nil {
				return err
			}
			c, err := container.New(context.Background(), s)
			if err != nil {
				return err
			}

			adapter := httpadapter.New(c.Router)
			lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
				return adapter.ProxyWithContext(ctx, req)
			})
			return nil
		},
	}
}
