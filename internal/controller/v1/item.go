package v1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"go.uber.org/fx"

	"github.com/gmstracker/backend/internal/model"
	"github.com/gmstracker/backend/internal/pkg/pgerr"
	"github.com/gmstracker/backend/internal/server/svr"
	"github.com/gmstracker/backend/internal/service"
	"github.com/gmstracker/backend/internal/util/rekuest"
)

type Item struct {
	fx.In

	ItemService *service.Item
}

func RegisterItem(v1 *svr.V1, c Item) {
	v1.Get("/items", c.GetItems)
	v1.Get("/items/:itemId", c.GetItemById)
}

func (c *Item) GetItems(ctx *fiber.Ctx) error {
	if search := ctx.Query("search"); search != "" {
		if err := rekuest.ValidVar(ctx, search, "lte=64"); err != nil {
			return err
		}
		items, err := c.ItemService.SearchItemByName(ctx.UserContext(), search)
		if err != nil {
			return err
		}
		return ctx.JSON(items)
	}

	category := ctx.Query("category")
	rarity := ctx.Query("rarity")
	activeOnly := ctx.QueryBool("activeOnly", true)

	items, err := c.ItemService.GetItems(ctx.UserContext())
	if err != nil {
		return err
	}

	filtered := lo.Filter(items, func(item *model.Item, _ int) bool {
		if activeOnly && !item.IsActive {
			return false
		}
		if category != "" && item.Category.String != category {
			return false
		}
		return rarity == "" || item.Rarity.String == rarity
	})
	return ctx.JSON(filtered)
}

func (c *Item) GetItemById(ctx *fiber.Ctx) error {
	itemId, err := ctx.ParamsInt("itemId")
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid item id")
	}
	if err := rekuest.ValidVar(ctx, itemId, "gte=1"); err != nil {
		return err
	}

	item, err := c.ItemService.GetItemById(ctx.UserContext(), itemId)
	if err != nil {
		return err
	}
	return ctx.JSON(item)
}
