package voucher

import (
	"github.com/DhavalSuthar-24/clubportal/pkg/mailer"
	"github.com/gin-gonic/gin"
)

func RegisterVoucherRoutes(authenticated, admin *gin.RouterGroup, repo VoucherRepository, m mailer.Mailer, directivaEmail, templateID string) {
	voucherController := NewVoucherController(repo, m, directivaEmail, templateID)

	vouchers := authenticated.Group("/vouchers")
	{
		vouchers.GET("/me", voucherController.ListMine)
		vouchers.POST("", voucherController.CreateVoucher)
	}

	adminVouchers := admin.Group("/vouchers")
	{
		adminVouchers.GET("", voucherController.ListVouchers)
		adminVouchers.PUT("/:id/estado", voucherController.Review)
	}
}
